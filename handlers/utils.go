package handlers

import (
	"encoding/json"
	"net/http"
	"streak-pickem-go/logging"
)

// writeJSON serializes v to the response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("Handlers: failed to encode response: %v", err)
	}
}

// writeError sends a JSON error body with the given status code
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
