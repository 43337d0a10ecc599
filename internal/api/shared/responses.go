package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the standard JSON body for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and payload.
// A nil payload writes only the status code.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a standardized JSON error response. The message
// must already be safe for external consumption; raw error strings from
// lower layers never belong here.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	}
	RespondWithJSON(w, status, resp)
}

// RespondWithErrorAndLog logs the underlying error with full detail and then
// writes a sanitized error response to the client.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, status int, safeMessage string) {
	if logger != nil {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.Int("status", status),
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method),
		)
	}
	RespondWithError(w, r, status, safeMessage)
}
