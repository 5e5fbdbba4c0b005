package service

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/rtomilin/pennywise/internal/util"
)

func newTestTokenService() *TokenService {
	return NewTokenService(&util.TokenConfig{
		JwtSecretKey:     []byte("test-secret"),
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
		MaxRefreshTokens: 5,
	})
}

func TestCreateAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService()

	token, err := ts.CreateAccessToken("user-1", time.Now())
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty access token")
	}

	userID, err := ts.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("subject mismatch: got %q want %q", userID, "user-1")
	}
}

func TestCreateAccessToken_MissingSecret(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(&util.TokenConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour})

	if _, err := ts.CreateAccessToken("user-1", time.Now()); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService()

	token, err := ts.CreateAccessToken("user-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}
	if _, err := ts.ParseAccessToken(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService()
	other := NewTokenService(&util.TokenConfig{
		JwtSecretKey: []byte("other-secret"),
		AccessTTL:    time.Minute,
		RefreshTTL:   time.Hour,
	})

	token, err := ts.CreateAccessToken("user-1", time.Now())
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestNewRefreshTokenValue(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService()

	first, err := ts.NewRefreshTokenValue()
	if err != nil {
		t.Fatalf("NewRefreshTokenValue error: %v", err)
	}
	if len(first) != refreshTokenBytes*2 {
		t.Fatalf("value length: got %d want %d", len(first), refreshTokenBytes*2)
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Fatalf("value is not hex: %v", err)
	}

	second, err := ts.NewRefreshTokenValue()
	if err != nil {
		t.Fatalf("NewRefreshTokenValue error: %v", err)
	}
	if first == second {
		t.Fatal("two values must not collide")
	}
}

func TestHashRefreshToken(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService()

	raw, err := ts.NewRefreshTokenValue()
	if err != nil {
		t.Fatalf("NewRefreshTokenValue error: %v", err)
	}

	hash := ts.HashRefreshToken(raw)
	if hash == raw {
		t.Fatal("digest must never equal the raw value")
	}
	if hash != ts.HashRefreshToken(raw) {
		t.Fatal("digest must be deterministic")
	}
	if len(hash) != 64 {
		t.Fatalf("digest length: got %d want 64", len(hash))
	}
}
