package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashKey builds a "prefix:<sha256 hex>" cache key from arbitrary parts.
// Parts are streamed into the digest with a separator so ("ab","c") and
// ("a","bc") never produce the same key.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%v\x1f", p)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The full
// digest is kept: artifact keys are content-addressed and a truncated hash
// is not worth the collision risk.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
