package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// local dev storefront
var defaultCORSOrigins = []string{"http://localhost:3000"}

// CORS returns middleware that applies the storefront's allowed origin
// policy. With no configured origins it falls back to local development.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", SalesChannelHeader, "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
