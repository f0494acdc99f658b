package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
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

// ImageKeyOpts are the resize settings that change the cached output.
type ImageKeyOpts struct {
	Width   int `json:"width"`
	Quality int `json:"quality"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ImageKey returns the key of a resized image given the hash of the
	// source file contents.
	ImageKey(sourceHash string, opts ImageKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey implements Keyer.
func (DefaultKeyer) ImageKey(sourceHash string, opts ImageKeyOpts) string {
	return hashKey("image", sourceHash, opts)
}
