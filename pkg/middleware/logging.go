package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/constants"
)

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if v := r.Header.Get(conf.RealIPHeader); v != "" {
		return v
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if v := r.Header.Get(conf.RequestIDHeader); v != "" {
		return v
	}
	return uuid.New().String()
}

// WithLogger attaches a request-scoped logrus entry to the context, logs
// request start/finish and recovers panics with a stable 500 response.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := getRequestID(r, conf)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			fieldsLogger.WithFields(logrus.Fields{
				"host":       r.Host,
				"ip":         getRealIP(r, conf),
				"user-agent": r.UserAgent(),
			}).Info("request started")

			ctx := composables.WithLogger(r.Context(), fieldsLogger)
			ctx = context.WithValue(ctx, constants.RequestStart, start)

			w.Header().Set("X-Request-Id", requestID)
			ww := &statusWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic": recovered,
						"stack": string(debug.Stack()),
					}).Error("panic recovered in request handler")
					if !ww.wroteHeader {
						http.Error(ww, "Internal Server Error", http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))

			fieldsLogger.WithFields(logrus.Fields{
				"duration":     time.Since(start),
				"status-code":  ww.status,
				"status-class": ww.status / 100,
			}).Info("request completed")
		})
	}
}
