package httputil

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/hrmslite/hrms-backend/pkg/errors"
)

// ErrorBody is the JSON shape of every failed request
type ErrorBody struct {
	Code    string              `json:"code"`
	Error   string              `json:"error"`
	Details []errors.FieldError `json:"details,omitempty"`
}

// MessageBody is returned by operations that only report an outcome
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(data)
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Message sends {"message": msg} with status 200
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageBody{Message: msg})
}

// Error sends an error response. Anything that is not an AppError is
// reported as a generic internal error so no storage detail leaks out.
func Error(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.StatusCode, ErrorBody{
			Code:    appErr.Code,
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	JSON(w, http.StatusInternalServerError, ErrorBody{
		Code:  "INTERNAL_ERROR",
		Error: "an unexpected error occurred",
	})
}

// StatusOf returns the HTTP status Error would send for err
func StatusOf(err error) int {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// DecodeJSON decodes the request body into the provided struct. An empty
// body decodes as {} so validation can report every missing field.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return errors.BadRequest("invalid JSON body")
	}
	return nil
}
