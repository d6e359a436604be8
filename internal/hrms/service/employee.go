package service

import (
	"context"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/internal/hrms/validation"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employees EmployeeStore
	publisher EventPublisher
	logger    *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees EmployeeStore, publisher EventPublisher, log *logger.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		publisher: publisher,
		logger:    log.WithComponent("employee-service"),
	}
}

// List returns all employees, newest first
func (s *EmployeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, internal(err, "Failed to fetch employees")
	}
	return employees, nil
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*repository.Employee, error) {
	emp, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, internal(err, "Failed to fetch employee")
	}
	return emp, nil
}

// Create stores a new employee from a validated request
func (s *EmployeeService) Create(ctx context.Context, req validation.CreateEmployeeRequest) (*repository.Employee, error) {
	emp := &repository.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, internal(err, "Failed to create employee")
	}

	s.logger.Info().Str("employee_id", emp.EmployeeID).Msg("employee created")
	s.publisher.PublishEmployeeCreated(ctx, emp)

	return emp, nil
}

// Delete removes an employee together with its attendance history
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.employees.Delete(ctx, employeeID); err != nil {
		return internal(err, "Failed to delete employee")
	}

	s.logger.Info().Str("employee_id", employeeID).Msg("employee deleted")
	s.publisher.PublishEmployeeDeleted(ctx, employeeID)

	return nil
}
