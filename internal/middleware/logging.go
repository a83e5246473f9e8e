// Package middleware provides HTTP middleware shared by the server's endpoints.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging logs all incoming requests with method, path and duration.
// Websocket upgrades are logged on arrival only; their "completion" is the
// end of the connection, which the ws package logs itself.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
