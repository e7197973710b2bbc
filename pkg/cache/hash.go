package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// shardHash picks a shard for key. xxhash is used because it runs on every
// lookup and does not need to be collision resistant.
func shardHash(key string) uint64 {
	return xxhash.Sum64String(key)
}
