package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKeyOpts captures every pipeline option that changes a rendered
// artifact. Any new option that affects output must be added here, otherwise
// stale artifacts would be served for the new setting.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Prune    bool   `json:"prune"`
	Minimize bool   `json:"minimize"`
	Compress bool   `json:"compress"`
	Spaced   bool   `json:"spaced"`
	Circular bool   `json:"circular"`
}

// ArtifactKey derives the cache key for one rendered artifact of a machine.
// machineHash is the content hash of the canonical definition (see [Hash]).
func ArtifactKey(machineHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", machineHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
