package oasloc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// HashParts hashes several strings as one unit, separating them with NUL
// so that ("ab", "c") and ("a", "bc") hash differently. The transformer
// uses it to key cached rule output by text plus field classification.
func HashParts(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a result-cache key from a content hash and locale.
func CacheKey(hash, locale string) string {
	return hash + ":" + locale
}
