package database

import (
	stderrors "errors"
	"strings"

	"github.com/hrmslite/hrms-backend/pkg/errors"
	"github.com/lib/pq"
)

// PostgreSQL error codes the service reacts to
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == code
}

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error or has no user-facing meaning.
func MapPQError(err error) *errors.AppError {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case codeCheckViolation:
		return mapCheckConstraint(pqErr)

	case codeUniqueViolation:
		field, message := constraintField(pqErr)
		return errors.Conflict(field, message)

	case codeForeignKeyViolation:
		return errors.NotFound("Employee")

	case codeNotNullViolation:
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation([]errors.FieldError{{Field: col, Message: "must not be empty"}})

	default:
		return nil
	}
}

func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	switch {
	case strings.Contains(pqErr.Constraint, "status"):
		return errors.Validation([]errors.FieldError{{
			Field:   "status",
			Message: "Status must be either Present or Absent",
		}})
	default:
		return errors.BadRequest("data validation failed: " + pqErr.Constraint)
	}
}

// constraintField names the request field behind a unique constraint.
func constraintField(pqErr *pq.Error) (string, string) {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "email"):
		return "email", "An employee with this email already exists"
	case strings.Contains(constraint, "employee_id"):
		return "employee_id", "An employee with this ID already exists"
	case strings.Contains(constraint, "attendance"):
		return "date", "Attendance for this employee and date already exists"
	default:
		return "", "A record with these values already exists"
	}
}
