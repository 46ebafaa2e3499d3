package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashURL creates a SHA256 hash of a URL string. This gives consistent,
// safe keys for report deduplication without storing raw URLs in indexes.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}
