package testutil

import (
	"fmt"
	"sync"
)

// EmployeeFixture represents test employee data
type EmployeeFixture struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// AttendanceFixture represents a test attendance mark
type AttendanceFixture struct {
	EmployeeID string
	Date       string
	Status     string
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	mu       sync.Mutex
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sequence++
	return f.sequence
}

// Employee creates an employee fixture with unique id and email
func (f *FixtureFactory) Employee(opts ...func(*EmployeeFixture)) EmployeeFixture {
	seq := f.nextSeq()

	emp := EmployeeFixture{
		EmployeeID: fmt.Sprintf("EMP%03d", seq),
		FullName:   fmt.Sprintf("Test Employee %d", seq),
		Email:      fmt.Sprintf("employee%d@test.hrms.dev", seq),
		Department: "Engineering",
	}

	for _, opt := range opts {
		opt(&emp)
	}

	return emp
}

// WithEmployeeID sets the employee identifier
func WithEmployeeID(id string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.EmployeeID = id
	}
}

// WithEmail sets the employee email
func WithEmail(email string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.Email = email
	}
}

// WithFullName sets the employee name
func WithFullName(name string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.FullName = name
	}
}

// WithDepartment sets the employee department
func WithDepartment(department string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.Department = department
	}
}

// Present creates a Present mark for employeeID on date
func (f *FixtureFactory) Present(employeeID, date string) AttendanceFixture {
	return AttendanceFixture{EmployeeID: employeeID, Date: date, Status: "Present"}
}

// Absent creates an Absent mark for employeeID on date
func (f *FixtureFactory) Absent(employeeID, date string) AttendanceFixture {
	return AttendanceFixture{EmployeeID: employeeID, Date: date, Status: "Absent"}
}
