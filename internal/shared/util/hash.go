package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOwnerKey returns the hex SHA-256 of an owner key. Archive paths use it
// so emails never appear in object keys.
func HashOwnerKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
