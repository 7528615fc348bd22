package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Respond wraps the payload into a Response envelope (identity if it is
// one already) and writes it with the envelope's status code.
func Respond(w http.ResponseWriter, logger *slog.Logger, payload any) {
	response := Wrap(payload)
	RespondJSON(w, logger, response.StatusCode(), response)
}

// RespondError writes an ErrorResponse envelope with the given status and message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, NewError(message, status))
}

// RespondJSON writes the payload as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}
