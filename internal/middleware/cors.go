package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows requests from any origin. Preflight requests are answered
// here with 204 and do not reach later stages.
func CORS() Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler
}
