package logging

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader is set on every response served through the middleware.
const RequestIDHeader = "X-Request-ID"

// HTTPLogger logs one summary entry per HTTP request.
type HTTPLogger struct {
	logger *Logger
}

// NewHTTPLogger creates a new HTTP logger.
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{logger: logger}
}

// statusRecorder captures the status code and size written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Middleware stamps a request id on the response and logs the request once served.
func (h *HTTPLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		recorder.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Milliseconds()
		level := INFO
		switch {
		case recorder.status >= 500:
			level = ERROR
		case recorder.status >= 400:
			level = WARN
		}
		if level < h.logger.minLevel {
			return
		}

		entry := h.logger.entry(level, "http", fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, recorder.status), map[string]any{
			"component":   h.logger.Component(),
			"method":      r.Method,
			"path":        r.URL.Path,
			"query":       r.URL.RawQuery,
			"status":      recorder.status,
			"size":        recorder.size,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent(),
		})
		entry.RequestID = requestID
		entry.Duration = &duration
		h.logger.write(entry)
	})
}
