package middleware

import (
	"net/http"

	"github.com/taskforge/tarefas-api/internal/api/shared"
)

// TraceMiddleware assigns a trace ID to every request so logs and error
// responses for the same request can be correlated.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
