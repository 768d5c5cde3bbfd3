package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken digests a session token for storage. The sessions table never
// holds the raw JWT, only this digest.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
