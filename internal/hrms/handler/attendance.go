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

// AttendanceMarkedResponse is the body of a successful mark
type AttendanceMarkedResponse struct {
	Message    string                 `json:"message"`
	Attendance *repository.Attendance `json:"attendance"`
}

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	service *service.AttendanceService
	rules   *validation.Rules
	logger  *logger.Logger
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(svc *service.AttendanceService, rules *validation.Rules, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: svc,
		rules:   rules,
		logger:  log,
	}
}

// List lists attendance, optionally filtered by date, range or employee
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := validation.AttendanceQuery{
		Date:       query.Get("date"),
		From:       query.Get("from"),
		To:         query.Get("to"),
		EmployeeID: query.Get("employee_id"),
	}
	if err := h.rules.AttendanceQuery(&q); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	records, err := h.service.List(r.Context(), q)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, records)
}

// GetByEmployee returns an employee with its attendance history
func (h *AttendanceHandler) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := validation.EmployeeAttendanceQuery{
		EmployeeID: chi.URLParam(r, "employeeId"),
		From:       query.Get("from"),
		To:         query.Get("to"),
	}
	if err := h.rules.EmployeeAttendanceQuery(&q); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	history, err := h.service.ForEmployee(r.Context(), q)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, history)
}

// Mark records attendance. A new record answers 201, an updated one 200.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req validation.MarkAttendanceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	if err := h.rules.MarkAttendance(&req); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	rec, created, err := h.service.Mark(r.Context(), req)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	if created {
		httputil.Created(w, AttendanceMarkedResponse{Message: "Attendance marked successfully", Attendance: rec})
		return
	}
	httputil.JSON(w, http.StatusOK, AttendanceMarkedResponse{Message: "Attendance updated successfully", Attendance: rec})
}

// Stats returns an employee's attendance summary
func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := h.rules.AttendanceEmployeeID(chi.URLParam(r, "employeeId"))
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	stats, err := h.service.Stats(r.Context(), id)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
