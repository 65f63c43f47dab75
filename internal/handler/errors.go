package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/users-api/internal/domain"
	"github.com/msomdec/users-api/internal/validation"
)

const (
	msgValidation      = "Error on validation attributes"
	msgDuplicateEmail  = "E-mail already registered"
	msgInvalidBody     = "Invalid request body"
	msgRateLimited     = "Rate limit exceeded"
	msgUnexpected      = "Unexpected error"
	errValidationTitle = "Validation Error"
)

// StandardError is the body of every error response.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// ValidationError is a StandardError carrying the violated field rules.
type ValidationError struct {
	StandardError
	Errors []validation.FieldError `json:"errors"`
}

func newStandardError(r *http.Request, status int, title, message string) StandardError {
	return StandardError{
		Timestamp: time.Now().UTC(),
		Path:      r.URL.Path,
		Status:    status,
		Error:     title,
		Message:   message,
	}
}

// writeError sends a StandardError whose error field is the status text.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, newStandardError(r, status, http.StatusText(status), message))
}

func writeValidationError(w http.ResponseWriter, r *http.Request, violations []validation.FieldError) {
	writeJSON(w, http.StatusBadRequest, ValidationError{
		StandardError: newStandardError(r, http.StatusBadRequest, errValidationTitle, msgValidation),
		Errors:        violations,
	})
}

// handleServiceError translates a service failure into an error response.
// Failures outside the known taxonomy are logged and reported as 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, r, http.StatusBadRequest, msgDuplicateEmail)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, msgUnexpected)
	}
}
