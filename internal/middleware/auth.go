package middleware

import (
	"net/http"

	"github.com/notuna/order-service/pkg/utils"
)

// APIKey checks the Authorization header against a static allow-list and
// rejects unknown callers with 401.
func APIKey(keys []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		allowed[key] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Authorization")
			if key == "" {
				utils.WriteError(w, "authorization header is required", http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[key]; !ok {
				utils.WriteError(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
