// Package validation checks and normalizes incoming requests before they
// reach a service. Every violation is reported, each tagged with the name
// of the offending field.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hrmslite/hrms-backend/internal/hrms/clock"
	"github.com/hrmslite/hrms-backend/pkg/config"
	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"golang.org/x/text/unicode/norm"
)

var employeeCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Rules validates the request types of the HRMS API
type Rules struct {
	v           *httputil.Validator
	clock       clock.Clock
	enforce     bool
	departments map[string]string // lowercased name -> configured spelling
}

// New builds the rule set. clk decides which day counts as today for the
// not_future rule.
func New(clk clock.Clock, cfg config.ValidationConfig) (*Rules, error) {
	r := &Rules{
		v:           httputil.NewValidator(),
		clock:       clk,
		enforce:     cfg.EnforceDepartments,
		departments: make(map[string]string, len(cfg.Departments)),
	}
	for _, d := range cfg.Departments {
		d = normalizeText(d)
		r.departments[strings.ToLower(d)] = d
	}

	rules := map[string]validator.Func{
		"employee_code": func(fl validator.FieldLevel) bool {
			return employeeCodePattern.MatchString(fl.Field().String())
		},
		"calendar_date": func(fl validator.FieldLevel) bool {
			_, err := clock.ParseDate(fl.Field().String())
			return err == nil
		},
		"not_future": func(fl validator.FieldLevel) bool {
			return !r.clock.IsFuture(fl.Field().String())
		},
		"department": func(fl validator.FieldLevel) bool {
			if !r.enforce {
				return true
			}
			_, ok := r.departments[strings.ToLower(fl.Field().String())]
			return ok
		},
	}
	for tag, fn := range rules {
		if err := r.v.RegisterRule(tag, fn); err != nil {
			return nil, fmt.Errorf("register rule %s: %w", tag, err)
		}
	}

	r.registerMessages(cfg.Departments)
	return r, nil
}

func (r *Rules) registerMessages(departments []string) {
	const employeeIDRequired = "Employee ID is required"

	r.v.RegisterMessage("employee_id", "required", employeeIDRequired)
	r.v.RegisterMessage("employee_id", "employee_code", "Employee ID must be alphanumeric (dashes and underscores allowed)")
	r.v.RegisterMessage("employee_id", "max", "Employee ID must be at most 50 characters")
	r.v.RegisterMessage("id", "required", employeeIDRequired)
	r.v.RegisterMessage("employeeId", "required", employeeIDRequired)

	r.v.RegisterMessage("full_name", "required", "Full name is required")
	r.v.RegisterMessage("full_name", "min", "Full name must be between 2 and 100 characters")
	r.v.RegisterMessage("full_name", "max", "Full name must be between 2 and 100 characters")

	r.v.RegisterMessage("email", "required", "Email is required")
	r.v.RegisterMessage("email", "email", "Invalid email format")
	r.v.RegisterMessage("email", "max", "Email must be at most 254 characters")

	r.v.RegisterMessage("department", "required", "Department is required")
	r.v.RegisterMessage("department", "max", "Department must be at most 100 characters")
	r.v.RegisterMessage("department", "department", "Department must be one of: "+strings.Join(departments, ", "))

	r.v.RegisterMessage("date", "required", "Date is required")
	r.v.RegisterMessage("date", "calendar_date", "Invalid date format (use YYYY-MM-DD)")
	r.v.RegisterMessage("date", "not_future", "Cannot mark attendance for future dates")
	r.v.RegisterMessage("from", "calendar_date", "Invalid from date format (use YYYY-MM-DD)")
	r.v.RegisterMessage("to", "calendar_date", "Invalid to date format (use YYYY-MM-DD)")

	r.v.RegisterMessage("status", "required", "Status is required")
	r.v.RegisterMessage("status", "oneof", "Status must be either Present or Absent")
}

// CreateEmployee normalizes req in place and validates it. Names and
// departments are trimmed and NFC-normalized, emails are lowercased.
func (r *Rules) CreateEmployee(req *CreateEmployeeRequest) error {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.FullName = normalizeText(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Department = normalizeText(req.Department)
	if err := r.v.Struct(req); err != nil {
		return err
	}
	req.Department = r.canonicalDepartment(req.Department)
	return nil
}

// EmployeeID validates the {id} path parameter and returns it trimmed
func (r *Rules) EmployeeID(id string) (string, error) {
	ref := employeeRef{ID: strings.TrimSpace(id)}
	if err := r.v.Struct(ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// AttendanceEmployeeID validates the {employeeId} path parameter
func (r *Rules) AttendanceEmployeeID(id string) (string, error) {
	ref := employeeIDParam{EmployeeID: strings.TrimSpace(id)}
	if err := r.v.Struct(ref); err != nil {
		return "", err
	}
	return ref.EmployeeID, nil
}

// MarkAttendance normalizes req in place and validates it
func (r *Rules) MarkAttendance(req *MarkAttendanceRequest) error {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Date = strings.TrimSpace(req.Date)
	req.Status = strings.TrimSpace(req.Status)
	return r.v.Struct(req)
}

// AttendanceQuery validates the list filters. An inverted from/to range is
// accepted and simply matches nothing.
func (r *Rules) AttendanceQuery(q *AttendanceQuery) error {
	q.Date = strings.TrimSpace(q.Date)
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	q.EmployeeID = strings.TrimSpace(q.EmployeeID)
	return r.v.Struct(q)
}

// EmployeeAttendanceQuery validates the path parameter and range of the
// per-employee history.
func (r *Rules) EmployeeAttendanceQuery(q *EmployeeAttendanceQuery) error {
	q.EmployeeID = strings.TrimSpace(q.EmployeeID)
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	return r.v.Struct(q)
}

// canonicalDepartment returns the configured spelling of dept when the
// allow-list is enforced.
func (r *Rules) canonicalDepartment(dept string) string {
	if canonical, ok := r.departments[strings.ToLower(dept)]; r.enforce && ok {
		return canonical
	}
	return dept
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
