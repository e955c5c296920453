package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger gives every request its own LogData and writes one entry
// when the request finishes.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)
			if requestID := middleware.GetReqID(req.Context()); requestID != "" {
				logData.AddData("requestID", requestID)
			}

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req.WithContext(WithLogData(req.Context(), logData)))

			logData.AddData("status", ww.Status())
			logData.AddData("duration", time.Since(start).Milliseconds())

			name := routeName(req)
			if ww.Status() >= http.StatusInternalServerError {
				logData.Log().Errorf("Handler.%v.Error", name)
				return
			}
			logData.Log().Infof("Handler.%v.Complete", name)
		})
	}
}

func routeName(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return req.Method + " " + pattern
		}
	}
	return req.Method + " " + req.URL.Path
}
