package models

import "time"

// RefreshTokenEntry is one stored refresh token. Only the sha256 digest of the
// raw value is kept; the raw value leaves the process exactly once, in the
// response that issued it.
type RefreshTokenEntry struct {
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// User owns its refresh-token collection. RefreshTokens is ordered oldest
// first and never exceeds the configured maximum after a mutation.
type User struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	PasswordHash  string              `json:"-"`
	RefreshTokens []RefreshTokenEntry `json:"-"`
	CreatedAt     time.Time           `json:"created_at"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
