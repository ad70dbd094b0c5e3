// Package middleware holds the HTTP wrappers shared by the API routes.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows browsers on origins to call the API. "*" allows any origin.
func Cors(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Run-ID"},
		MaxAge:         3600,
	})
	return c.Handler
}
