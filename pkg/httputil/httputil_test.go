package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hrmslite/hrms-backend/pkg/errors"
	"github.com/hrmslite/hrms-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "not found",
			err:        errors.NotFound("Employee"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantError:  "Employee not found",
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("service: %w", errors.Conflict("email", "Email already exists")),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantError:  "Email already exists",
		},
		{
			name:       "internal keeps cause private",
			err:        errors.InternalWrap(fmt.Errorf("dial tcp: refused"), "Failed to fetch employees"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantError:  "Failed to fetch employees",
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantError:  "an unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, StatusOf(tt.err))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
			assert.NotContains(t, rec.Body.String(), "relation")
		})
	}
}

func TestError_ConflictDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.Conflict("employee_id", "Employee ID already exists"))

	body := decodeError(t, rec)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "employee_id", body.Details[0].Field)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Ada", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSON(req, &dst)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &dst))
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dst))
	assert.Empty(t, dst.Name)
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "Employee deleted successfully")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Employee deleted successfully"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("propagates incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("generates one when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test")

	h := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employees", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "/api/employees")
}

func TestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test")

	h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/health"`)
}

type signup struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,upper"`
	Role  string `json:"role" validate:"oneof=admin member"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.RegisterRule("upper", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToUpper(s)
	}))
	v.RegisterMessage("", "upper", "must be upper case")
	v.RegisterMessage("email", "required", "Email is required")

	assert.NoError(t, v.Struct(signup{Email: "a@b.co", Code: "X1", Role: "admin"}))

	err := v.Struct(signup{Code: "abc", Role: "owner"})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Email is required", appErr.Field("email"))
	assert.Equal(t, "must be upper case", appErr.Field("code"))
	assert.Equal(t, "must be one of: admin member", appErr.Field("role"))
}
