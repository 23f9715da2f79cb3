package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"reviro_api/internal/common"
	"reviro_api/internal/common/security"
	"reviro_api/internal/domain/model"
	"reviro_api/internal/domain/repository"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// AuthMiddleware is the per-request access guard. The token's claims are only
// a hint: the user is re-resolved from the store on every request, so a
// deleted account stops authenticating even while its tokens are unexpired.
type AuthMiddleware struct {
	codec    *security.TokenCodec
	userRepo repository.UserRepository
}

func NewAuthMiddleware(codec *security.TokenCodec, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, userRepo: userRepo}
}

// Authenticator rejects the request with a single undifferentiated 401 on any
// token failure — missing, malformed, expired, bad claims, unknown user — so
// the response does not leak why a token was refused.
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context()) // filled in by jwtauth.Verifier
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		claims, err := security.ClaimsFromToken(token)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), claims.UserID)
		if err != nil || user.Username != claims.Username {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates the request on role membership. Composed after
// Authenticator; a missing user context is a 401, a role outside the allowed
// set is a 403 with a distinct message (role membership is not secret once
// authenticated).
func (m *AuthMiddleware) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
				return
			}
			if !model.RoleAllowed(user, allowed...) {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the resolved user placed by Authenticator.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}
