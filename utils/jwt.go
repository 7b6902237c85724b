package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken computes a SHA-256 hash of the token string. Raw tokens never leave the
// process, only their hashes are used as cache keys.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
