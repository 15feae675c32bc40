// Package cache provides pluggable byte caching for pipeline stages.
//
// Scene placement and artifact rendering are deterministic for a given
// seed, so their outputs are cached by content hash: the scene key
// covers the trace text plus placement options, and the artifact key
// covers the scene plus render options. Backends:
//
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for serve deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Cache TTLs per pipeline stage.
const (
	// TTLScene expires cached scene placements.
	TTLScene = 7 * 24 * time.Hour

	// TTLArtifact expires cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// SceneKeyOpts are the placement options that affect scene output and
// therefore participate in the scene cache key.
type SceneKeyOpts struct {
	TurnRate      float64
	BaseRadius    float64
	RadiusGrowth  float64
	HeightPerStep float64
	Seed          uint64
}

// ArtifactKeyOpts are the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format      string
	Title       string
	RevealDelay int
	Labels      bool
	Detailed    bool
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// SceneKey generates a key for scene placement results.
	SceneKey(traceHash string, opts SceneKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for scene placement results.
func (k *DefaultKeyer) SceneKey(traceHash string, opts SceneKeyOpts) string {
	return hashKey("scene", traceHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
