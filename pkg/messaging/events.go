package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventEmployeeCreated  = "hrms.employee.created"
	EventEmployeeDeleted  = "hrms.employee.deleted"
	EventAttendanceMarked = "hrms.attendance.marked"
)

// ExchangeHRMSEvents is the default topic exchange for domain events
const ExchangeHRMSEvents = "hrms.events"

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// EmployeeCreatedEvent is published when an employee record is created
type EmployeeCreatedEvent struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// EmployeeDeletedEvent is published when an employee and its attendance are removed
type EmployeeDeletedEvent struct {
	EmployeeID string `json:"employee_id"`
}

// AttendanceMarkedEvent is published whenever a day is marked, first time or not
type AttendanceMarkedEvent struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Created    bool   `json:"created"`
}
