package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// ResetTokenBytes is the entropy of a password reset token.
const ResetTokenBytes = 32

// RandomToken returns n bytes from crypto/rand encoded as unpadded
// URL-safe base64, suitable for embedding in a link path segment.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
