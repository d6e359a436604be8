// Package hrmstest provides an in-memory store with the same observable
// behavior as the PostgreSQL repositories, for service and handler tests.
package hrmstest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/pkg/errors"
)

// Store keeps employees and attendance in memory. It implements the
// service's EmployeeStore, AttendanceStore and DashboardStore.
type Store struct {
	mu         sync.Mutex
	nextID     int64
	now        func() time.Time
	employees  []*repository.Employee
	attendance []*repository.Attendance

	// Err, when set, is returned by every call.
	Err error
}

// NewStore returns an empty store. Each write advances its clock by one
// second so created_at ordering is deterministic.
func NewStore() *Store {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := &Store{}
	s.now = func() time.Time {
		return base.Add(time.Duration(s.nextID) * time.Second)
	}
	return s
}

// Employees

// List returns every employee, newest first.
func (s *Store) List(ctx context.Context) ([]*repository.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*repository.Employee, 0, len(s.employees))
	for i := len(s.employees) - 1; i >= 0; i-- {
		e := *s.employees[i]
		out = append(out, &e)
	}
	return out, nil
}

// GetByEmployeeID returns the employee or a NotFound error.
func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (*repository.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	if e := s.findEmployee(employeeID); e != nil {
		cp := *e
		return &cp, nil
	}
	return nil, errors.NotFound("Employee")
}

// Create stores emp, reporting duplicate employee IDs before duplicate emails.
func (s *Store) Create(ctx context.Context, emp *repository.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if s.findEmployee(emp.EmployeeID) != nil {
		return errors.Conflict("employee_id", fmt.Sprintf("An employee with ID %q already exists", emp.EmployeeID))
	}
	for _, e := range s.employees {
		if e.Email == emp.Email {
			return errors.Conflict("email", "An employee with this email already exists")
		}
	}

	s.nextID++
	emp.ID = s.nextID
	emp.CreatedAt = s.now()
	cp := *emp
	s.employees = append(s.employees, &cp)
	return nil
}

// Delete removes the employee and, like the foreign key cascade, its attendance.
func (s *Store) Delete(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if s.findEmployee(employeeID) == nil {
		return errors.NotFound("Employee")
	}

	employees := s.employees[:0]
	for _, e := range s.employees {
		if e.EmployeeID != employeeID {
			employees = append(employees, e)
		}
	}
	s.employees = employees

	attendance := s.attendance[:0]
	for _, a := range s.attendance {
		if a.EmployeeID != employeeID {
			attendance = append(attendance, a)
		}
	}
	s.attendance = attendance
	return nil
}

// Attendance

// AttendanceStore adapts s to the attendance store interface, whose List
// method clashes with the employee one.
func (s *Store) AttendanceStore() *AttendanceStore {
	return &AttendanceStore{s: s}
}

// AttendanceStore is the attendance view of a Store
type AttendanceStore struct {
	s *Store
}

// List returns joined records matching filter, newest date first.
func (a *AttendanceStore) List(ctx context.Context, filter repository.AttendanceFilter) ([]*repository.AttendanceRecord, error) {
	return a.s.listAttendance(filter)
}

// ListForEmployee returns one employee's records within the optional range.
func (a *AttendanceStore) ListForEmployee(ctx context.Context, employeeID, from, to string) ([]*repository.Attendance, error) {
	records, err := a.s.listAttendance(repository.AttendanceFilter{EmployeeID: employeeID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]*repository.Attendance, 0, len(records))
	for _, r := range records {
		rec := r.Attendance
		out = append(out, &rec)
	}
	return out, nil
}

// Mark inserts or updates the record for (employeeID, date) and reports
// whether it was created.
func (a *AttendanceStore) Mark(ctx context.Context, employeeID, date, status string) (*repository.Attendance, bool, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}

	if s.findEmployee(employeeID) == nil {
		return nil, false, errors.NotFound("Employee")
	}

	for _, rec := range s.attendance {
		if rec.EmployeeID == employeeID && rec.Date == date {
			rec.Status = status
			cp := *rec
			return &cp, false, nil
		}
	}

	s.nextID++
	rec := &repository.Attendance{
		ID:         s.nextID,
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CreatedAt:  s.now(),
	}
	s.attendance = append(s.attendance, rec)
	cp := *rec
	return &cp, true, nil
}

// Counts tallies the employee's attendance by status.
func (a *AttendanceStore) Counts(ctx context.Context, employeeID string) (*repository.AttendanceCounts, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var c repository.AttendanceCounts
	for _, rec := range s.attendance {
		if rec.EmployeeID != employeeID {
			continue
		}
		c.TotalDays++
		if rec.Status == repository.StatusPresent {
			c.PresentDays++
		} else {
			c.AbsentDays++
		}
	}
	return &c, nil
}

// Dashboard

// Snapshot computes the same rollups as the dashboard repository.
func (s *Store) Snapshot(ctx context.Context, today, monthStart string) (*repository.DashboardSnapshot, error) {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return nil, s.Err
	}

	snap := &repository.DashboardSnapshot{
		TotalEmployees: len(s.employees),
		ByDepartment:   make([]repository.DepartmentCount, 0),
	}

	byDept := make(map[string]int)
	for _, e := range s.employees {
		byDept[e.Department]++
	}
	for dept, n := range byDept {
		snap.ByDepartment = append(snap.ByDepartment, repository.DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(snap.ByDepartment, func(i, j int) bool {
		return snap.ByDepartment[i].Department < snap.ByDepartment[j].Department
	})

	for _, rec := range s.attendance {
		if rec.Date == today {
			addStatus(&snap.Today, rec.Status)
		}
		if rec.Date >= monthStart {
			addStatus(&snap.Month, rec.Status)
		}
	}
	s.mu.Unlock()

	recent, err := s.listAttendance(repository.AttendanceFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].Date != recent[j].Date {
			return recent[i].Date > recent[j].Date
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > repository.RecentAttendanceLimit {
		recent = recent[:repository.RecentAttendanceLimit]
	}
	snap.Recent = recent

	return snap, nil
}

func addStatus(t *repository.StatusTotals, status string) {
	t.Total++
	if status == repository.StatusPresent {
		t.Present++
	} else {
		t.Absent++
	}
}

func (s *Store) listAttendance(f repository.AttendanceFilter) ([]*repository.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*repository.AttendanceRecord, 0)
	for _, rec := range s.attendance {
		if f.EmployeeID != "" && rec.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Date != "" && rec.Date != f.Date {
			continue
		}
		if f.From != "" && rec.Date < f.From {
			continue
		}
		if f.To != "" && rec.Date > f.To {
			continue
		}
		emp := s.findEmployee(rec.EmployeeID)
		out = append(out, &repository.AttendanceRecord{
			Attendance: *rec,
			FullName:   emp.FullName,
			Department: emp.Department,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

func (s *Store) findEmployee(employeeID string) *repository.Employee {
	for _, e := range s.employees {
		if e.EmployeeID == employeeID {
			return e
		}
	}
	return nil
}
