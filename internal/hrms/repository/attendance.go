package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hrmslite/hrms-backend/pkg/database"
	"github.com/hrmslite/hrms-backend/pkg/errors"
)

// Attendance statuses accepted by the attendance table
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance is one employee's status on one calendar day. Date is kept in
// its YYYY-MM-DD wire form so no time zone conversion can shift it.
type Attendance struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID string    `db:"employee_id" json:"employee_id"`
	Date       string    `db:"date" json:"date"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AttendanceRecord is an attendance row joined with the employee's name
// and department.
type AttendanceRecord struct {
	Attendance
	FullName   string `db:"full_name" json:"full_name"`
	Department string `db:"department" json:"department"`
}

// AttendanceFilter narrows List. Empty fields are ignored; the rest are
// combined with AND. From and To are inclusive.
type AttendanceFilter struct {
	EmployeeID string
	Date       string
	From       string
	To         string
}

// AttendanceCounts are the per-employee totals behind the stats endpoint
type AttendanceCounts struct {
	TotalDays   int `db:"total_days" json:"total_days"`
	PresentDays int `db:"present_days" json:"present_days"`
	AbsentDays  int `db:"absent_days" json:"absent_days"`
}

// Percentage is the share of present days, rounded to a whole percent.
// It is 0 when nothing has been recorded.
func (c AttendanceCounts) Percentage() int {
	if c.TotalDays == 0 {
		return 0
	}
	return int(math.Round(float64(c.PresentDays) / float64(c.TotalDays) * 100))
}

const attendanceColumns = `id, employee_id, to_char(date, 'YYYY-MM-DD') AS date, status, created_at`

const attendanceRecordColumns = `a.id, a.employee_id, to_char(a.date, 'YYYY-MM-DD') AS date, a.status, a.created_at,
	e.full_name, e.department`

// AttendanceRepository handles attendance persistence
type AttendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance joined with employee details, newest day first
// and by name within a day.
func (r *AttendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]*AttendanceRecord, error) {
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != "" {
		conditions = append(conditions, "a.employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Date != "" {
		conditions = append(conditions, "a.date = ?")
		args = append(args, filter.Date)
	}
	if filter.From != "" {
		conditions = append(conditions, "a.date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "a.date <= ?")
		args = append(args, filter.To)
	}

	query := `SELECT ` + attendanceRecordColumns + `
		FROM attendance a
		JOIN employees e ON e.employee_id = a.employee_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date DESC, e.full_name ASC"

	records := make([]*AttendanceRecord, 0)
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListForEmployee returns one employee's attendance, newest first, limited
// to the inclusive [from, to] range when those are set.
func (r *AttendanceRepository) ListForEmployee(ctx context.Context, employeeID, from, to string) ([]*Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = ?`
	args := []interface{}{employeeID}

	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date DESC"

	records := make([]*Attendance, 0)
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list employee attendance: %w", err)
	}
	return records, nil
}

// Find returns the record for (employeeID, date), or nil if there is none.
func (r *AttendanceRepository) Find(ctx context.Context, employeeID, date string) (*Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2`

	var rec Attendance
	err := r.db.GetContext(ctx, &rec, query, employeeID, date)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &rec, nil
}

// Mark records status for employeeID on date. An existing record for that
// day is updated in place. created reports whether a new row was inserted.
func (r *AttendanceRepository) Mark(ctx context.Context, employeeID, date, status string) (rec *Attendance, created bool, err error) {
	exists, err := employeeExists(ctx, r.db, employeeID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, errors.NotFound("Employee")
	}

	existing, err := r.Find(ctx, employeeID, date)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		rec, err = r.updateStatus(ctx, employeeID, date, status)
		return rec, false, err
	}

	rec, err = r.insert(ctx, employeeID, date, status)
	switch {
	case err == nil:
		return rec, true, nil
	case database.IsUniqueViolation(err):
		// Another request created the row after our lookup.
		rec, err = r.updateStatus(ctx, employeeID, date, status)
		return rec, false, err
	case database.IsForeignKeyViolation(err):
		return nil, false, errors.NotFound("Employee")
	default:
		return nil, false, fmt.Errorf("insert attendance: %w", err)
	}
}

func (r *AttendanceRepository) insert(ctx context.Context, employeeID, date, status string) (*Attendance, error) {
	query := `
		INSERT INTO attendance (employee_id, date, status)
		VALUES ($1, $2, $3)
		RETURNING ` + attendanceColumns

	var rec Attendance
	if err := r.db.GetContext(ctx, &rec, query, employeeID, date, status); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) updateStatus(ctx context.Context, employeeID, date, status string) (*Attendance, error) {
	query := `
		UPDATE attendance SET status = $1
		WHERE employee_id = $2 AND date = $3
		RETURNING ` + attendanceColumns

	var rec Attendance
	err := r.db.GetContext(ctx, &rec, query, status, employeeID, date)
	if stderrors.Is(err, sql.ErrNoRows) {
		// The employee and its records were deleted underneath us.
		return nil, errors.NotFound("Employee")
	}
	if err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return &rec, nil
}

// Counts returns the attendance totals of one employee. Missing employees
// simply have zero records; callers check existence first.
func (r *AttendanceRepository) Counts(ctx context.Context, employeeID string) (*AttendanceCounts, error) {
	query := `
		SELECT
			COUNT(*) AS total_days,
			COALESCE(SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END), 0) AS present_days,
			COALESCE(SUM(CASE WHEN status = 'Absent' THEN 1 ELSE 0 END), 0) AS absent_days
		FROM attendance
		WHERE employee_id = $1
	`

	var counts AttendanceCounts
	if err := r.db.GetContext(ctx, &counts, query, employeeID); err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}
	return &counts, nil
}
