package middleware

import (
	"net/http"
)

// DefaultMaxBody applies when no positive limit is configured.
const DefaultMaxBody = 1 << 20

// MaxBody caps request bodies of POST requests, the only method the API
// accepts a body on.
func MaxBody(maxSize int64) Middleware {
	if maxSize <= 0 {
		maxSize = DefaultMaxBody
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
