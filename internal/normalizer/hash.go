package normalizer

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA256 hash of a canonical URL, hex-encoded. Equivalent
// URLs hash identically once normalized, which makes the hash a stable
// registry key.
func Hash(canonicalURL string) string {
	h := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(h[:])
}
