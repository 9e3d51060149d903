package application

import (
	"errors"
	"strings"
	"testing"
)

func TestTokenHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := CreateTokenHash("s3cret-api-token", DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	if err := VerifyToken(hash, "s3cret-api-token"); err != nil {
		t.Errorf("matching token rejected: %v", err)
	}
	if err := VerifyToken(hash, "wrong-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}
	for _, hash := range cases {
		if err := VerifyToken(hash, "token"); !errors.Is(err, ErrInvalidTokenHash) {
			t.Errorf("hash %q: expected ErrInvalidTokenHash, got %v", hash, err)
		}
	}
}
