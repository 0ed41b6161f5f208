package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
)

// Logger returns a middleware that writes one access-log line per request.
// Requests answered with 5xx are logged at error level, 4xx at warn, the rest at info.
func Logger(logger *logging.Logger) func(http.Handler) http.Handler {
	sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log := logger.WithContext(r.Context()).Info
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				log = logger.WithContext(r.Context()).Error
			case wrapped.statusCode >= http.StatusBadRequest:
				log = logger.WithContext(r.Context()).Warn
			}

			log("http request",
				"method", sanitize(r.Method),
				"path", sanitize(r.URL.Path),
				"status", wrapped.statusCode,
				"bytes", wrapped.bytes,
				"duration", time.Since(start),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code and body size
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}
