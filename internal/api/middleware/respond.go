package middleware

import (
	"encoding/json"
	"net/http"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError emits the same error envelope the handlers use, for responses
// produced before a request reaches a handler.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: http.StatusText(status), Message: message})
}
