// Package cache stores raw backend payloads so repeat analyses of the
// same input skip the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"
)

// Cache defines the interface for caching raw analysis payloads.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable, versioned cache key from the analyze input.
// URL and text are hashed with a separator so adjacent inputs cannot
// collide, and the pro flag participates because pro analyses return
// richer payloads.
func Key(url, text string, pro bool) string {
	h := sha256.New()
	_, _ = io.WriteString(h, url)
	h.Write([]byte{0})
	_, _ = io.WriteString(h, text)
	if pro {
		h.Write([]byte{1})
	}
	return "trustlens:v1:" + hex.EncodeToString(h.Sum(nil))
}
