package cache

// ScopedKeyer wraps a Keyer with a prefix, so that artifacts of one live
// board can be told apart from (and cleared without touching) those of
// another.
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "board:"+id+":")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(boardHash, opts)
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
