package models

import "time"

// ResetToken is a single-use credential that allows one password change for
// Email. Only the keyed hash of the token is persisted; the raw value exists
// in the e-mail sent to the user and in the URL they follow.
type ResetToken struct {
	// Token is the raw URL-safe value. Empty when loaded from storage.
	Token string

	// TokenHash is the HMAC-SHA256 of Token, hex encoded.
	TokenHash string

	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer usable at moment now.
func (t ResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
