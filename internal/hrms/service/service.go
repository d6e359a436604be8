// Package service holds the HRMS business flow. Services receive requests
// that already passed validation, consult the repositories and announce
// changes through an EventPublisher.
package service

import (
	"context"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/pkg/errors"
)

// EmployeeStore is the employee persistence the services depend on
type EmployeeStore interface {
	List(ctx context.Context) ([]*repository.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*repository.Employee, error)
	Create(ctx context.Context, emp *repository.Employee) error
	Delete(ctx context.Context, employeeID string) error
}

// AttendanceStore is the attendance persistence the services depend on
type AttendanceStore interface {
	List(ctx context.Context, filter repository.AttendanceFilter) ([]*repository.AttendanceRecord, error)
	ListForEmployee(ctx context.Context, employeeID, from, to string) ([]*repository.Attendance, error)
	Mark(ctx context.Context, employeeID, date, status string) (*repository.Attendance, bool, error)
	Counts(ctx context.Context, employeeID string) (*repository.AttendanceCounts, error)
}

// DashboardStore reads the dashboard figures
type DashboardStore interface {
	Snapshot(ctx context.Context, today, monthStart string) (*repository.DashboardSnapshot, error)
}

// EventPublisher announces changes. Implementations must not block on or
// report delivery failures.
type EventPublisher interface {
	PublishEmployeeCreated(ctx context.Context, emp *repository.Employee)
	PublishEmployeeDeleted(ctx context.Context, employeeID string)
	PublishAttendanceMarked(ctx context.Context, rec *repository.Attendance, created bool)
}

// internal passes AppErrors through and hides anything else behind message.
func internal(err error, message string) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.InternalWrap(err, message)
}
