// Package web provides the HTTP response envelope, path helpers and the
// middleware stack shared by all routes.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// Envelope is the uniform response body shape. Every API response, success or
// error, follows it.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RespondData writes a success envelope with the given payload and message.
func RespondData(w http.ResponseWriter, logger *slog.Logger, status int, data any, message string) {
	respond(w, logger, status, Envelope{Success: true, Data: data, Message: message})
}

// RespondError writes a failure envelope with a human-readable message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respond(w, logger, status, Envelope{Success: false, Message: message})
}

// RespondValidationErrors writes a failure envelope carrying a field->rule map
// so clients can highlight the offending inputs.
func RespondValidationErrors(w http.ResponseWriter, logger *slog.Logger, fields map[string]string) {
	respond(w, logger, http.StatusBadRequest, Envelope{
		Success: false,
		Data:    map[string]any{"validation_errors": fields},
		Message: "validation failed",
	})
}

func respond(w http.ResponseWriter, logger *slog.Logger, status int, envelope Envelope) {
	response, err := json.Marshal(envelope)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// ParseID extracts and validates the numeric ID from the request path.
// Returns the ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}
