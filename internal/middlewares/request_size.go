package middlewares

import "net/http"

// RequestSizeLimitMiddleware rejects request bodies larger than maxBytes.
// Oversized declared lengths get an immediate 413; chunked bodies are
// capped by MaxBytesReader so a handler read fails instead of buffering
// an unbounded payload.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"error":"request body too large"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
