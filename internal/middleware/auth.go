package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"pctrack/internal/infrastructure"
)

// AdminAuth gates the administrative surface behind the single shared
// credential. The credential is presented either as a bearer token or
// in the X-Admin-Password header; there are no accounts or sessions.
func AdminAuth(password string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			presented := r.Header.Get("X-Admin-Password")
			if presented == "" {
				authHeader := r.Header.Get("Authorization")
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					presented = parts[1]
				}
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(password)) != 1 {
				logger.WarnContext(ctx, "admin auth failed",
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)

				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(http.StatusUnauthorized)

				traceID := infrastructure.GetTraceID(ctx)
				response := `{"type":"/errors/unauthorized","title":"Unauthorized","status":401,"detail":"Administrative credential required","trace_id":"` + traceID + `"}`
				w.Write([]byte(response))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
