package security

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPasswordHash("secret123", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

// A corrupt stored hash reads as a plain mismatch.
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$10$tooshort"} {
		if CheckPasswordHash("anything", hash) {
			t.Errorf("CheckPasswordHash(_, %q) = true, want false", hash)
		}
	}
}
