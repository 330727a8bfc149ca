package services

import (
	"io"
	"log/slog"
	"net/http"
)

// Greeting is the fixed body returned by HandleGreeting.
const Greeting = "Hello world!"

// HandleGreeting answers every request with 200 and the plaintext greeting.
func HandleGreeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, Greeting); err != nil {
		slog.Warn("Failed to write response", "error", err, "method", r.Method, "path", r.URL.Path)
	}
}
