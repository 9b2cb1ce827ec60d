package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Error codes returned in the "error" member of JSON error bodies.
const (
	EINVALID  = "invalid"   // 400 - Validation error (bad input)
	ENOTFOUND = "not_found" // 404 - Resource not found
	EINTERNAL = "internal"  // 500 - Internal server error (hide details)
)

// ErrorCodeToHTTPStatus maps an error code to its HTTP status.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case EINVALID:
		return http.StatusBadRequest
	case ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// codedError is implemented by package errors that carry their own code and
// user-facing message, such as *address.AddressError.
type codedError interface {
	error
	ErrorCode() string
	ErrorMessage() string
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code, message string) {
	writeJSON(w, ErrorCodeToHTTPStatus(code), ErrorResponse{Error: code, Message: message})
}

// writeCodedError replies with the code and message carried by err.
// Errors without a code are treated as internal and their text is hidden.
func writeCodedError(w http.ResponseWriter, err error) {
	var ce codedError
	if errors.As(err, &ce) && ce.ErrorCode() != EINTERNAL {
		writeError(w, ce.ErrorCode(), ce.ErrorMessage())
		return
	}
	writeError(w, EINTERNAL, internalMessage)
}

const internalMessage = "An internal error occurred. Please try again later."

// writeInternalError logs err with the request context and replies with a generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error) {
	logger.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
	writeError(w, EINTERNAL, internalMessage)
}
