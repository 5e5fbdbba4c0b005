package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rtomilin/pennywise/internal/util"
)

var (
	ErrMissingSecret      = errors.New("jwt signing secret is not configured")
	ErrAccessTokenInvalid = errors.New("access token invalid")
)

// refreshTokenBytes gives 320 bits of entropy per refresh-token value.
const refreshTokenBytes = 40

type TokenService struct {
	jwtSecretKey []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewTokenService(cfg *util.TokenConfig) *TokenService {
	return &TokenService{
		jwtSecretKey: cfg.JwtSecretKey,
		accessTTL:    cfg.AccessTTL,
		refreshTTL:   cfg.RefreshTTL,
	}
}

func (ts *TokenService) RefreshTTL() time.Duration { return ts.refreshTTL }

// CreateAccessToken mints an HS512 signed token carrying the user identity
// and an expiry claim.
func (ts *TokenService) CreateAccessToken(userID string, now time.Time) (string, error) {
	if len(ts.jwtSecretKey) == 0 {
		return "", ErrMissingSecret
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(ts.jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("signed string: %w", err)
	}

	return signedToken, nil
}

// NewRefreshTokenValue returns a fresh opaque refresh-token value. The raw
// value is handed to the client exactly once and only its digest is stored.
func (ts *TokenService) NewRefreshTokenValue() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashRefreshToken is the deterministic digest used to store and look up
// refresh tokens without persisting them in recoverable form.
func (ts *TokenService) HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ParseAccessToken verifies the signature and expiry and returns the subject.
func (ts *TokenService) ParseAccessToken(token string) (string, error) {
	if len(ts.jwtSecretKey) == 0 {
		return "", ErrMissingSecret
	}

	parsedToken, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
				return nil, ErrAccessTokenInvalid
			}
			return ts.jwtSecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(util.JWTLeeWay),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAccessTokenInvalid, err)
	}

	claims, ok := parsedToken.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsedToken.Valid || claims.Subject == "" {
		return "", ErrAccessTokenInvalid
	}

	return claims.Subject, nil
}
