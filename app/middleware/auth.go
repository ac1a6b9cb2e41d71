// Package middleware carries the application-level HTTP guards. The generic
// middleware (logging, recovery, CORS, rate limiting) lives under pkg.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/auth"
)

type userKey struct{}

// CurrentUser returns the authenticated user placed on the request context by
// Protect. The second return is false when the request did not pass Protect.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok
}

// WithUser returns a context carrying the given user. Exposed for tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// Protect authenticates the request from the session cookie and loads the
// user onto the request context. Requests without a valid session get 401.
func Protect(users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				deny(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := auth.ValidateToken(cookie.Value)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminOnly rejects non-admin users. It must run after Protect.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		if !user.IsAdmin() {
			deny(w, http.StatusForbidden, "Access denied. Admin only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
