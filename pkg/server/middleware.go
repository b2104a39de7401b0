package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/crossflow/pkg/observability"
)

// requestLogger logs one line per request and reports it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				dur := time.Since(start)
				hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)

				level := log.InfoLevel
				if status >= 500 {
					level = log.ErrorLevel
				}
				logger.Log(level, "request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", dur,
					"request_id", middleware.GetReqID(r.Context()))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
