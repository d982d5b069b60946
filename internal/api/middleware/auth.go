package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Priiiyaa/Gratify/internal/auth"
	"go.uber.org/zap"
)

// Authenticate verifies the bearer token on every request it wraps and stores
// the resolved identity in the request context. There is no session storage;
// each request is authenticated independently.
func Authenticate(verifier auth.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Unauthorized: No token provided")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			identity, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Token verification failed", zap.Error(err))
				unauthorized(w, "Unauthorized: Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the verified identity set by Authenticate.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(*auth.Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
