package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Provide injects a value into every request context under the given key.
func Provide(key any, value any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
