package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/todo"
)

// Error represents a structured error response. Message is safe for external
// eyes: no stack traces, no internal paths.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes, one per kind in the error taxonomy.
const (
	ErrCodeValidation         = "validation_error"
	ErrCodeEmailInUse         = "email_in_use"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeMissingToken       = "missing_token"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeInternal           = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeValidationError writes a 400 response for malformed or out-of-range input.
func writeValidationError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeValidation, message)
}

// writeInternalError writes a 500 response with a generic message.
func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
}

// writeDomainError maps a domain sentinel error to its HTTP representation.
// Unrecognised errors become 500s with no internal detail leaked; the caller
// is responsible for logging them.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrValidation):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, account.ErrEmailInUse):
		writeError(w, http.StatusConflict, ErrCodeEmailInUse, "email already in use")
	case errors.Is(err, auth.ErrMissingToken):
		writeError(w, http.StatusUnauthorized, ErrCodeMissingToken, "missing bearer token")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, ErrCodeInvalidToken, "invalid bearer token")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "insufficient role")
	case errors.Is(err, todo.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "task not found")
	default:
		writeInternalError(w)
	}
}
