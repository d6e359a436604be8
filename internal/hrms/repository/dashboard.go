package repository

import (
	"context"
	"fmt"

	"github.com/hrmslite/hrms-backend/pkg/database"
	"github.com/jmoiron/sqlx"
)

// RecentAttendanceLimit caps the recent activity list on the dashboard
const RecentAttendanceLimit = 10

// DepartmentCount is the head count of one department
type DepartmentCount struct {
	Department string `db:"department" json:"department"`
	Count      int    `db:"count" json:"count"`
}

// StatusTotals counts attendance rows by status
type StatusTotals struct {
	Total   int `db:"total"`
	Present int `db:"present"`
	Absent  int `db:"absent"`
}

// DashboardSnapshot holds the raw figures behind the dashboard, all read
// from a single database snapshot.
type DashboardSnapshot struct {
	TotalEmployees int
	ByDepartment   []DepartmentCount
	Today          StatusTotals
	Month          StatusTotals
	Recent         []*AttendanceRecord
}

// DashboardRepository runs the read-only rollup queries
type DashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Snapshot collects the dashboard figures for the calendar day today and
// the month starting at monthStart (both YYYY-MM-DD).
func (r *DashboardRepository) Snapshot(ctx context.Context, today, monthStart string) (*DashboardSnapshot, error) {
	snap := &DashboardSnapshot{
		ByDepartment: make([]DepartmentCount, 0),
		Recent:       make([]*AttendanceRecord, 0),
	}

	err := r.db.ReadSnapshot(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &snap.TotalEmployees, `SELECT COUNT(*) FROM employees`); err != nil {
			return fmt.Errorf("count employees: %w", err)
		}

		if err := tx.SelectContext(ctx, &snap.ByDepartment, `
			SELECT department, COUNT(*) AS count
			FROM employees
			GROUP BY department
			ORDER BY department`); err != nil {
			return fmt.Errorf("count departments: %w", err)
		}

		if err := tx.GetContext(ctx, &snap.Today, statusTotalsQuery+` WHERE date = $1`, today); err != nil {
			return fmt.Errorf("count today: %w", err)
		}

		if err := tx.GetContext(ctx, &snap.Month, statusTotalsQuery+` WHERE date >= $1`, monthStart); err != nil {
			return fmt.Errorf("count month: %w", err)
		}

		if err := tx.SelectContext(ctx, &snap.Recent, `SELECT `+attendanceRecordColumns+`
			FROM attendance a
			JOIN employees e ON e.employee_id = a.employee_id
			ORDER BY a.date DESC, a.created_at DESC
			LIMIT $1`, RecentAttendanceLimit); err != nil {
			return fmt.Errorf("recent attendance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

const statusTotalsQuery = `
	SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END), 0) AS present,
		COALESCE(SUM(CASE WHEN status = 'Absent' THEN 1 ELSE 0 END), 0) AS absent
	FROM attendance`
