package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/daphnetxg/homepage-audit/internal/platform/requestid"
)

// RequestID assigns a unique request ID to each request. An incoming
// X-Request-ID header is reused when present; otherwise a new UUID v4
// is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
