package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/nameplate/pkg/observability"
)

// requestLogger logs each request at debug level and reports it to the
// HTTP observability hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			hooks := observability.HTTP()
			hooks.OnRequest(ctx, r.Method, r.URL.Path)

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			hooks.OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)

			logFn := logger.Debug
			if status >= http.StatusInternalServerError {
				logFn = logger.Error
			}
			logFn("Request", "method", r.Method, "path", r.URL.Path, "status", status,
				"bytes", ww.BytesWritten(), "took", elapsed, "request_id", middleware.GetReqID(ctx))
		})
	}
}
