package security

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"reviro_api/internal/common"
)

var testSecret = []byte("test-secret")

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	return NewTokenCodec("HS256", testSecret)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	tok, err := codec.Sign("alice", 42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
	if until := time.Until(claims.ExpiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("ExpiresAt %v not ~1h out", claims.ExpiresAt)
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	expired, err := codec.Sign("alice", 1, "user", -time.Second)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if _, err := codec.Verify(expired); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("Verify(expired) error = %v, want ErrTokenExpired", err)
	}

	valid, err := codec.Sign("alice", 1, "user", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if _, err := codec.Verify(valid); err != nil {
		t.Fatalf("Verify(valid) error = %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec("HS256", []byte("right-secret")).Sign("bob", 7, "user", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	other := NewTokenCodec("HS256", []byte("wrong-secret"))
	if _, err := other.Verify(tok); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("Verify with wrong secret error = %v, want ErrTokenInvalid", err)
	}
}

// A token signed with a different algorithm must be rejected even when the
// secret matches.
func TestTokenCodec_AlgorithmMismatch(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	forged := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub":  "alice",
		"id":   int64(1),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing HS512 token: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("Verify(HS512 token) error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := codec.Verify(tok); !errors.Is(err, common.ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

// Tokens missing any of the required claims are invalid even with a good
// signature and future expiry.
func TestTokenCodec_MissingClaims(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		claims gojwt.MapClaims
	}{
		{"no sub", gojwt.MapClaims{"id": int64(1), "role": "user", "exp": exp}},
		{"no id", gojwt.MapClaims{"sub": "alice", "role": "user", "exp": exp}},
		{"no role", gojwt.MapClaims{"sub": "alice", "id": int64(1), "exp": exp}},
		{"no exp", gojwt.MapClaims{"sub": "alice", "id": int64(1), "role": "user"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, tc.claims).SignedString(testSecret)
			if err != nil {
				t.Fatalf("signing token: %v", err)
			}
			if _, err := codec.Verify(signed); !errors.Is(err, common.ErrTokenInvalid) {
				t.Fatalf("Verify error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}
