package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/apperror"
)

// ErrorResponse is the error shape shared by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point, logging is all we can do.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnsupported):
			status = http.StatusBadRequest
			errorType = "unsupported_language"
		case errors.Is(err, apperror.ErrRuntimeUnavailable):
			status = http.StatusServiceUnavailable
			errorType = "runtime_unavailable"
		case errors.Is(err, apperror.ErrTimeout):
			status = http.StatusRequestTimeout
			errorType = "timeout"
		case errors.Is(err, apperror.ErrCompilation), errors.Is(err, apperror.ErrExecution):
			status = http.StatusUnprocessableEntity
			errorType = "execution_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Raw errors may carry paths or command lines, keep them out of responses.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
