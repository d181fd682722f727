// Package cache provides pluggable caching for computed segment
// graphs and transition plans. Plan generation is cheap for small
// layouts but grows with glyph count; installations that switch
// glyphs constantly share computed plans through a cache backend.
//
// Three backends are provided: FileCache for single-machine CLI use,
// RedisCache for sharing between processes, and NullCache to disable
// caching.
package cache

import (
	"context"
	"time"
)

// Default retention for each cached artifact. Graphs are invalidated
// by layout content hash, so a long TTL is safe; plans additionally
// key on every generation input.
const (
	TTLGraph = 24 * time.Hour
	TTLPlan  = 24 * time.Hour
)

// Cache is the storage interface all backends implement. A miss is
// reported through the ok return, not an error; errors mean the
// backend itself failed.
type Cache interface {
	// Get retrieves the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value. A ttl of zero stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKeyOpts are the inputs that make a generated plan unique beyond
// the graph it was generated on.
type PlanKeyOpts struct {
	Current   []string
	Target    []string
	Kind      string
	Seed      uint64
	Steps     int
	Wandering float64
	Density   float64
}

// Keyer derives cache keys for the two cacheable artifacts.
type Keyer interface {
	// GraphKey identifies a built segment graph by the content hash
	// of its layout file.
	GraphKey(layoutHash string) string

	// PlanKey identifies a generated plan by its graph and every
	// generation input.
	PlanKey(graphHash string, opts PlanKeyOpts) string
}

// DefaultKeyer hashes all inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for segment graph caching.
func (k *DefaultKeyer) GraphKey(layoutHash string) string {
	return hashKey("graph", layoutHash)
}

// PlanKey generates a key for transition plan caching.
func (k *DefaultKeyer) PlanKey(graphHash string, opts PlanKeyOpts) string {
	return hashKey("plan", graphHash, opts)
}
