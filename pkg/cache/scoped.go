package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple installations
// can share one backend without key collisions. Useful when several
// displays point at the same Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key
// of the inner keyer. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for segment graph caching.
func (k *ScopedKeyer) GraphKey(layoutHash string) string {
	return k.prefix + k.inner.GraphKey(layoutHash)
}

// PlanKey generates a prefixed key for transition plan caching.
func (k *ScopedKeyer) PlanKey(graphHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(graphHash, opts)
}
