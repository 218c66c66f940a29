package cache

// ScopedKeyer prefixes every key from an inner Keyer. Shared backends
// (one Redis serving several walls) need per-deployment namespaces so
// their entries never collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with a key prefix. A nil inner wraps the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ContentKey(sourceID string) string {
	return k.prefix + k.inner.ContentKey(sourceID)
}

func (k *ScopedKeyer) LayoutKey(contentHash string, viewportWidth float64) string {
	return k.prefix + k.inner.LayoutKey(contentHash, viewportWidth)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, format)
}
