package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/promptpilot/promptpilot-go/auth"
)

// writeJSON sends a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func messageResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeFieldErrors sends the collected validation failures as
// {errors: [{field, message}]} so the caller can correct all of them.
func writeFieldErrors(w http.ResponseWriter, errs auth.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
