package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "qchip:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(configHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(configHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(configHash, opts)
}
