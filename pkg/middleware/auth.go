package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/response"
)

// UserLoader fetches the live user row for a validated token. Authorization
// trusts the row rather than the token claims, since role and vendor can
// change after issuance.
type UserLoader interface {
	FindByID(id uint) (*models.User, error)
}

// userKey is the unexported context key for the authenticated user.
type userKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromCtx returns the authenticated user, or nil for anonymous requests.
func UserFromCtx(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey{}).(*models.User)
	return u
}

// Identity validates a bearer token when one is present and attaches the
// live user to the request context. Requests without a token pass through
// anonymous; a present-but-invalid token is rejected with 401.
func Identity(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			user, err := users.FindByID(claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth blocks anonymous requests. Wire it after Identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromCtx(r.Context()) == nil {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
