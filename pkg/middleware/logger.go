package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/constants"
)

// WithLogger assigns each request an ID, installs a fields logger in the
// context and logs the request once it completes. Panics from downstream
// handlers are recovered here and turned into a JSON 500.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(conf.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			fields := logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			}
			entry := logger.WithFields(fields)

			ctx := r.Context()
			ctx = context.WithValue(ctx, constants.LoggerKey, entry)
			ctx = context.WithValue(ctx, constants.RequestStart, start)

			defer func() {
				if rec := recover(); rec != nil {
					entry.WithField("panic", rec).Error("recovered from panic in handler")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"error": map[string]interface{}{
							"code":    "INTERNAL",
							"message": "internal server error",
						},
						"meta": map[string]interface{}{"request_id": requestID},
					})
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
			entry.WithField("duration", time.Since(start).String()).Info("request completed")
		})
	}
}
