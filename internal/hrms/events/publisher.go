// Package events announces HRMS changes on the message bus. Publication is
// best effort: failures are logged and never fail the request.
package events

import (
	"context"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"github.com/hrmslite/hrms-backend/pkg/logger"
	"github.com/hrmslite/hrms-backend/pkg/messaging"
)

// Source identifies this service in published events
const Source = "hrms-service"

// Publisher sends one event to the bus
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// HRMSEventPublisher publishes employee and attendance events
type HRMSEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewHRMSEventPublisher declares exchange on rmq and returns a publisher for it
func NewHRMSEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*HRMSEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, exchange, Source, log)
	if err != nil {
		return nil, err
	}
	return NewWithPublisher(publisher, log), nil
}

// NewWithPublisher wraps an existing Publisher
func NewWithPublisher(p Publisher, log *logger.Logger) *HRMSEventPublisher {
	return &HRMSEventPublisher{
		publisher: p,
		logger:    log,
	}
}

// PublishEmployeeCreated publishes an employee created event
func (p *HRMSEventPublisher) PublishEmployeeCreated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeCreatedEvent{
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
	}

	if err := p.publisher.Publish(correlated(ctx), messaging.EventEmployeeCreated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.EmployeeID).Msg("failed to publish employee created event")
	}
}

// PublishEmployeeDeleted publishes an employee deleted event
func (p *HRMSEventPublisher) PublishEmployeeDeleted(ctx context.Context, employeeID string) {
	data := messaging.EmployeeDeletedEvent{
		EmployeeID: employeeID,
	}

	if err := p.publisher.Publish(correlated(ctx), messaging.EventEmployeeDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to publish employee deleted event")
	}
}

// PublishAttendanceMarked publishes an attendance marked event
func (p *HRMSEventPublisher) PublishAttendanceMarked(ctx context.Context, rec *repository.Attendance, created bool) {
	data := messaging.AttendanceMarkedEvent{
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     rec.Status,
		Created:    created,
	}

	if err := p.publisher.Publish(correlated(ctx), messaging.EventAttendanceMarked, data); err != nil {
		p.logger.Error().Err(err).
			Str("employee_id", rec.EmployeeID).
			Str("date", rec.Date).
			Msg("failed to publish attendance marked event")
	}
}

// correlated ties the event to the HTTP request that caused it
func correlated(ctx context.Context) context.Context {
	if messaging.CorrelationID(ctx) != "" {
		return ctx
	}
	if id := httputil.GetRequestID(ctx); id != "" {
		return messaging.WithCorrelationID(ctx, id)
	}
	return ctx
}

// Noop discards every event. It is used when the message bus is disabled.
type Noop struct{}

func (Noop) PublishEmployeeCreated(context.Context, *repository.Employee)          {}
func (Noop) PublishEmployeeDeleted(context.Context, string)                        {}
func (Noop) PublishAttendanceMarked(context.Context, *repository.Attendance, bool) {}
