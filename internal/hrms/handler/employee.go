package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/internal/hrms/service"
	"github.com/hrmslite/hrms-backend/internal/hrms/validation"
	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// EmployeeCreatedResponse is the body of a successful create
type EmployeeCreatedResponse struct {
	Message  string               `json:"message"`
	Employee *repository.Employee `json:"employee"`
}

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	service *service.EmployeeService
	rules   *validation.Rules
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *service.EmployeeService, rules *validation.Rules, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		rules:   rules,
		logger:  log,
	}
}

// List lists all employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employees)
}

// Get gets an employee by its identifier
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.rules.EmployeeID(chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// Create creates an employee
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateEmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	if err := h.rules.CreateEmployee(&req); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	employee, err := h.service.Create(r.Context(), req)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.Created(w, EmployeeCreatedResponse{
		Message:  "Employee created successfully",
		Employee: employee,
	})
}

// Delete deletes an employee and its attendance
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.rules.EmployeeID(chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.Message(w, "Employee deleted successfully")
}
