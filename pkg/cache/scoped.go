package cache

// ScopedKeyer prefixes every generated key, isolating cache namespaces
// when one backend serves several contexts (for example per-gallery
// scopes on a shared Redis).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps a keyer with a prefix. A nil inner keyer
// defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneKey generates a prefixed scene key.
func (k *ScopedKeyer) SceneKey(traceHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(traceHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
