package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// keySeparator cannot appear in names or versions taken from configuration or identifiers.
const keySeparator = "\x00"

// CacheKey derives the stable cache key of a (name, version, salt) triple.
func CacheKey(name, version, salt string) string {
	sum := sha256.Sum256([]byte(name + keySeparator + version + keySeparator + salt))
	return hex.EncodeToString(sum[:])
}
