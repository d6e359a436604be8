package validation

// CreateEmployeeRequest is the body of POST /api/employees
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,employee_code,max=50"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,max=254,email"`
	Department string `json:"department" validate:"required,max=100,department"`
}

// MarkAttendanceRequest is the body of POST /api/attendance
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,calendar_date,not_future"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}

// AttendanceQuery holds the optional filters of GET /api/attendance
type AttendanceQuery struct {
	Date       string `json:"date" validate:"omitempty,calendar_date"`
	From       string `json:"from" validate:"omitempty,calendar_date"`
	To         string `json:"to" validate:"omitempty,calendar_date"`
	EmployeeID string `json:"employee_id"`
}

// EmployeeAttendanceQuery addresses one employee's attendance history
type EmployeeAttendanceQuery struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	From       string `json:"from" validate:"omitempty,calendar_date"`
	To         string `json:"to" validate:"omitempty,calendar_date"`
}

type employeeRef struct {
	ID string `json:"id" validate:"required"`
}

type employeeIDParam struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}
