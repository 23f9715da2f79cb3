package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"reviro_api/internal/common"
)

// TokenClaims is the claim set carried by every signed token, access and
// refresh alike: {"sub": username, "id": user id, "role": role, "exp": unix}.
type TokenClaims struct {
	Username  string
	UserID    int64
	Role      string
	ExpiresAt time.Time
}

// TokenCodec signs and verifies compact signed tokens. The secret and
// algorithm are fixed at construction; the codec itself is stateless and
// safe for concurrent use.
type TokenCodec struct {
	auth *jwtauth.JWTAuth
}

// NewTokenCodec builds a codec for a symmetric algorithm (e.g. "HS256") and
// shared secret.
func NewTokenCodec(algorithm string, secret []byte) *TokenCodec {
	return &TokenCodec{auth: jwtauth.New(algorithm, secret, nil)}
}

// Auth exposes the underlying JWTAuth so the router can mount
// jwtauth.Verifier with the same secret/algorithm.
func (c *TokenCodec) Auth() *jwtauth.JWTAuth {
	return c.auth
}

// Sign issues a token for the given subject expiring after ttl.
func (c *TokenCodec) Sign(username string, userID int64, role string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub":  username,
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	_, tokenString, err := c.auth.Encode(claims)
	return tokenString, err
}

// Verify checks signature, algorithm and expiry, then extracts the claim set.
// Returns common.ErrTokenExpired when exp has passed and common.ErrTokenInvalid
// for every other failure.
func (c *TokenCodec) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwtauth.VerifyToken(c.auth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	return ClaimsFromToken(token)
}

// ClaimsFromToken extracts the required claims from an already-verified token.
// A token missing any of sub/id/role/exp is rejected as invalid.
func ClaimsFromToken(token jwt.Token) (*TokenClaims, error) {
	if token == nil {
		return nil, common.ErrTokenInvalid
	}

	username := token.Subject()
	if username == "" {
		return nil, common.ErrTokenInvalid
	}

	rawID, ok := token.Get("id")
	if !ok {
		return nil, common.ErrTokenInvalid
	}
	userID, ok := numericClaim(rawID)
	if !ok {
		return nil, common.ErrTokenInvalid
	}

	rawRole, ok := token.Get("role")
	if !ok {
		return nil, common.ErrTokenInvalid
	}
	role, ok := rawRole.(string)
	if !ok || role == "" {
		return nil, common.ErrTokenInvalid
	}

	exp := token.Expiration()
	if exp.IsZero() {
		return nil, common.ErrTokenInvalid
	}

	return &TokenClaims{
		Username:  username,
		UserID:    userID,
		Role:      role,
		ExpiresAt: exp,
	}, nil
}

// numericClaim normalizes the "id" claim: jwx hands back float64 for tokens
// parsed from the wire and int64 for tokens built locally.
func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
