// Package observability provides request logging and HTTP metrics middleware.
package observability

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/platform/metrics"
	"github.com/myhome/console/internal/platform/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request and counts it in m. A nil m
// records nothing.
func RequestLogger(logger logr.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)
			status := recorder.statusCode()
			m.ObserveHTTP(r.Method, status)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", recorder.bytes,
				"latency", time.Since(start).String(),
				"request_id", requestID(r),
			)
		})
	}
}

func requestID(r *http.Request) string {
	if id := requestctx.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return strings.TrimSpace(r.Header.Get(requestIDHeader))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
