package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS wraps the whole router so preflight requests are answered before
// gin routing, which would otherwise 404 on OPTIONS.
//
// Browsers refuse a literal "*" on credentialed requests, so a wildcard
// with credentials reflects the caller's origin instead.
func CORS(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}
	if allowCredentials && slices.Contains(allowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	return cors.Handler(opts)
}
