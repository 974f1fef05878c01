package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data keyed with hashKey
// and returns it hex-encoded. Password reset tokens are stored in this form
// so a leaked table does not reveal usable links.
//
//	digest := utils.HashString(rawToken, secretKey)
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
