package logging

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware attaches a request-scoped child of l to every request context.
// It must run after middleware.RequestID so the id is available.
func Middleware(l Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l.With(
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), reqLogger)))
		})
	}
}
