package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/log"
	"github.com/olusolaa/cloud-resource-api/internal/metrics"
)

const unmatchedRoute = "unmatched"

// RequestIDHeader is echoed back on every response. An incoming value is kept.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return unmatchedRoute
}

func requestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// Observe tags the request with an ID, logs it and feeds the metrics recorder
// when one is configured. It must run as mux middleware so the matched route
// is known.
func Observe(logger ports.Logger, recorder *metrics.Recorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r)
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(log.ContextWithFields(r.Context(), map[string]any{"request_id": id}))

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			route := routeName(r)
			if recorder != nil {
				recorder.Observe(route, r.Method, rec.code(), elapsed)
			}
			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       route,
				"status":      rec.code(),
				"duration_ms": elapsed.Milliseconds(),
			}
			reqLog := logger.WithFields(fields)
			if rec.code() >= http.StatusInternalServerError {
				reqLog.Warnf(r.Context(), "Request failed")
			} else {
				reqLog.Debugf(r.Context(), "Request served")
			}
		})
	}
}
