package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

type contextKey string

const authContextKey contextKey = "authContext"

// AuthMiddleware resolves the caller from the X-User-Id header the gateway
// sets after verifying the auth provider's token, and loads the matching
// profile to learn the caller's role. Requests without the header are
// rejected; a header without a profile yet is allowed through with an empty
// role so sign-up can create one.
func AuthMiddleware(userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-Id")
			if userID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}

			auth := &entities.AuthContext{UserID: userID}

			user, err := userRepo.GetByID(r.Context(), userID)
			switch {
			case err == nil:
				auth.Role = user.Role
			case apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound:
				// No profile yet; only profile creation is usable.
			default:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthFrom returns the caller's auth context, or nil on unauthenticated
// routes.
func AuthFrom(ctx context.Context) *entities.AuthContext {
	auth, _ := ctx.Value(authContextKey).(*entities.AuthContext)
	return auth
}
