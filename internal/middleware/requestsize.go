package middleware

import (
	"net/http"
)

// DefaultMaxRequestSize applies when the caller passes a non-positive value.
const DefaultMaxRequestSize int64 = 1 << 20 // 1MB

// MaxRequestSize caps request bodies. Oversized Content-Length declarations
// are rejected before the body is read; chunked bodies are cut off by
// MaxBytesReader once they cross the limit.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			defer r.Body.Close()

			next.ServeHTTP(w, r)
		})
	}
}
