// Package cache stores rendered preview artifacts.
//
// # Overview
//
// Rendering is cheap but not free: PNG rasterization and PDF conversion
// dominate the cost of a request. The pipeline therefore keys every
// artifact by the hash of the decoded state plus the options that affect
// its bytes, and stores it in a [Cache]:
//
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: durable cache with a TTL index
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] turns a state hash and [ArtifactKeyOpts] into a key. Keys embed
// [KeyVersion] so a change to the renderer's output invalidates old entries.
// [ScopedKeyer] prefixes keys when several deployments share one backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// KeyVersion is bumped whenever rendered output changes for the same input.
const KeyVersion = "v1"

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered artifact of a state.
	ArtifactKey(stateHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	LegacyClamp bool    `json:"legacy_clamp,omitempty"`
	Scale       float64 `json:"scale,omitempty"` // PNG only
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (k *DefaultKeyer) ArtifactKey(stateHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+KeyVersion, stateHash, opts)
}

// ScopedKeyer prepends a fixed namespace to every key of an inner Keyer.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prefixes inner's keys. A nil inner
// means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(stateHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(stateHash, opts)
}

// Hash returns the hex SHA-256 of data. It names states and artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey joins prefix and the hash of the JSON-encoded parts. Struct parts
// encode with fixed field order, so equal options give equal keys.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
