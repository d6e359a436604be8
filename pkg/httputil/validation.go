package httputil

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hrmslite/hrms-backend/pkg/errors"
)

// Validator evaluates struct tag rules and reports every failing field,
// using the JSON name of the field and a configurable message per rule.
type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// NewValidator creates a validator that names fields after their json tag
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{
		validate: v,
		messages: make(map[string]string),
	}
}

// RegisterRule registers a custom validation function under tag
func (v *Validator) RegisterRule(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// RegisterMessage sets the message reported when field fails tag.
// An empty field sets the default message for the tag.
func (v *Validator) RegisterMessage(field, tag, message string) {
	v.messages[field+"."+tag] = message
}

// Struct validates s and returns a validation AppError listing every
// failing field, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return err
	}

	details := make([]errors.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, errors.FieldError{
			Field:   e.Field(),
			Message: v.message(e),
		})
	}

	return errors.Validation(details)
}

func (v *Validator) message(e validator.FieldError) string {
	if msg, ok := v.messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	if msg, ok := v.messages["."+e.Tag()]; ok {
		return msg
	}
	return formatValidationError(e)
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "invalid value"
	}
}
