package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools or projects can
// share one redis instance without key collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "pkgdeps:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LockfileKey generates a prefixed key for decoded lockfile caching.
func (k *ScopedKeyer) LockfileKey(format string, content []byte) string {
	return k.prefix + k.inner.LockfileKey(format, content)
}
