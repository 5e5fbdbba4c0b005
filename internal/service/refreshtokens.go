package service

import (
	"time"

	"github.com/rtomilin/pennywise/internal/models"
)

// Pure transforms over a single user's refresh-token collection. The
// collection is ordered oldest first; persistence is the caller's concern.

// PruneExpired drops every entry whose expiry is at or before now. Pruning is
// lazy: it runs only when a user's record is loaded for a token operation.
func PruneExpired(entries []models.RefreshTokenEntry, now time.Time) []models.RefreshTokenEntry {
	kept := entries[:0:0]
	for _, e := range entries {
		if e.ExpiresAt.After(now) {
			kept = append(kept, e)
		}
	}
	return kept
}

// EnforceLimit evicts the oldest entries until at most maxSize remain,
// preserving the relative order of the survivors.
func EnforceLimit(entries []models.RefreshTokenEntry, maxSize int) []models.RefreshTokenEntry {
	if maxSize < 0 {
		maxSize = 0
	}
	if len(entries) <= maxSize {
		return entries
	}
	return append(entries[:0:0], entries[len(entries)-maxSize:]...)
}

// Attach appends one new entry for the digest with expiry now+ttl.
func Attach(entries []models.RefreshTokenEntry, tokenHash string, ttl time.Duration, now time.Time) []models.RefreshTokenEntry {
	return append(entries, models.RefreshTokenEntry{
		TokenHash: tokenHash,
		ExpiresAt: now.Add(ttl),
	})
}

// FindByTokenHash returns the first entry matching the digest, or nil.
func FindByTokenHash(entries []models.RefreshTokenEntry, tokenHash string) *models.RefreshTokenEntry {
	for i := range entries {
		if entries[i].TokenHash == tokenHash {
			return &entries[i]
		}
	}
	return nil
}

// RemoveByTokenHash removes the first entry matching the digest and reports
// whether a match existed.
func RemoveByTokenHash(entries []models.RefreshTokenEntry, tokenHash string) ([]models.RefreshTokenEntry, bool) {
	for i := range entries {
		if entries[i].TokenHash == tokenHash {
			kept := append(entries[:0:0], entries[:i]...)
			return append(kept, entries[i+1:]...), true
		}
	}
	return entries, false
}
