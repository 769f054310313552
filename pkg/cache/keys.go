package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ArtifactKey builds the cache key for a rendered deck. The key binds
// the encoded template, the raw payload document, and the generator
// version, so any change to input or renderer invalidates the entry.
func ArtifactKey(template, payload []byte, generator string) string {
	h := sha256.New()
	h.Write(template)
	h.Write([]byte{0})
	h.Write(payload)
	h.Write([]byte{0})
	h.Write([]byte(generator))
	return fmt.Sprintf("artifact:%s", hex.EncodeToString(h.Sum(nil)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
