// Package middleware holds the HTTP wrappers shared by the API routes.
package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/drivescope/core/internal/logging"
)

// Recovery turns a panicking handler into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.WithContext(r.Context()).Error("panic recovered",
					zap.Any("error", err),
					logging.String("path", r.URL.Path),
					logging.String("method", r.Method),
					logging.String("stack", string(debug.Stack())),
				)
				msg := "Internal server error"
				if id := logging.GetRequestID(r.Context()); id != "" {
					msg += " (request " + id + ")"
				}
				http.Error(w, msg, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
