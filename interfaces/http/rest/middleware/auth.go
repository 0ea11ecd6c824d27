package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFrom returns the authenticated user id stored by Authenticate, or ""
func UserIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// Authenticate resolves the bearer token and stores the user id on the
// request context. Requests without a valid token are rejected.
func Authenticate(authn ports.Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			userID, err := authn.UserID(r.Context(), token)
			if err != nil {
				logger.Debug("request auth failed", zap.Error(err))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
