package service

import (
	"context"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/internal/hrms/validation"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// EmployeeAttendance is an employee together with its attendance history
type EmployeeAttendance struct {
	Employee   *repository.Employee     `json:"employee"`
	Attendance []*repository.Attendance `json:"attendance"`
}

// AttendanceStats summarizes an employee's attendance
type AttendanceStats struct {
	TotalDays            int `json:"total_days"`
	PresentDays          int `json:"present_days"`
	AbsentDays           int `json:"absent_days"`
	AttendancePercentage int `json:"attendance_percentage"`
}

// EmployeeStats is an employee together with its attendance summary
type EmployeeStats struct {
	Employee *repository.Employee `json:"employee"`
	Stats    AttendanceStats      `json:"stats"`
}

// AttendanceService handles attendance business logic
type AttendanceService struct {
	attendance AttendanceStore
	employees  EmployeeStore
	publisher  EventPublisher
	logger     *logger.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance AttendanceStore, employees EmployeeStore, publisher EventPublisher, log *logger.Logger) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		employees:  employees,
		publisher:  publisher,
		logger:     log.WithComponent("attendance-service"),
	}
}

// List returns attendance records matching q
func (s *AttendanceService) List(ctx context.Context, q validation.AttendanceQuery) ([]*repository.AttendanceRecord, error) {
	records, err := s.attendance.List(ctx, repository.AttendanceFilter{
		EmployeeID: q.EmployeeID,
		Date:       q.Date,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, internal(err, "Failed to fetch attendance records")
	}
	return records, nil
}

// ForEmployee returns one employee's attendance history
func (s *AttendanceService) ForEmployee(ctx context.Context, q validation.EmployeeAttendanceQuery) (*EmployeeAttendance, error) {
	emp, err := s.employees.GetByEmployeeID(ctx, q.EmployeeID)
	if err != nil {
		return nil, internal(err, "Failed to fetch attendance records")
	}

	records, err := s.attendance.ListForEmployee(ctx, q.EmployeeID, q.From, q.To)
	if err != nil {
		return nil, internal(err, "Failed to fetch attendance records")
	}

	return &EmployeeAttendance{Employee: emp, Attendance: records}, nil
}

// Mark records the status of an employee on a day. created is false when
// an existing record for that day was updated.
func (s *AttendanceService) Mark(ctx context.Context, req validation.MarkAttendanceRequest) (*repository.Attendance, bool, error) {
	rec, created, err := s.attendance.Mark(ctx, req.EmployeeID, req.Date, req.Status)
	if err != nil {
		return nil, false, internal(err, "Failed to mark attendance")
	}

	s.logger.Debug().
		Str("employee_id", rec.EmployeeID).
		Str("date", rec.Date).
		Str("status", rec.Status).
		Bool("created", created).
		Msg("attendance marked")
	s.publisher.PublishAttendanceMarked(ctx, rec, created)

	return rec, created, nil
}

// Stats returns an employee's attendance summary
func (s *AttendanceService) Stats(ctx context.Context, employeeID string) (*EmployeeStats, error) {
	emp, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, internal(err, "Failed to fetch attendance statistics")
	}

	counts, err := s.attendance.Counts(ctx, employeeID)
	if err != nil {
		return nil, internal(err, "Failed to fetch attendance statistics")
	}

	return &EmployeeStats{
		Employee: emp,
		Stats: AttendanceStats{
			TotalDays:            counts.TotalDays,
			PresentDays:          counts.PresentDays,
			AbsentDays:           counts.AbsentDays,
			AttendancePercentage: counts.Percentage(),
		},
	}, nil
}
