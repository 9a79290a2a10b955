// Package cache stores serialized analysis reports keyed by a
// fingerprint of the raw input unit, so unchanged units skip
// re-analysis in batch runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is the caching interface
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key fingerprints the raw bytes of one analysis unit. Any byte change
// in the input produces a new key; analysis is deterministic, so equal
// input means equal report.
func Key(input []byte) string {
	sum := sha256.Sum256(input)
	return "hierlint:v1:" + hex.EncodeToString(sum[:])
}
