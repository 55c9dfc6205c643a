package handlers

import (
	"log/slog"
	"net/http"
)

// Ping - liveness check mounted by both the REST and the websocket server.
func Ping(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("pong")); err != nil {
			logger.Error("failed to write pong", "error", err)
		}
	}
}
