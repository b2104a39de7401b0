package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments (or the CLI
// and the server) can share one backend without colliding.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "crossflow:server:")
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

// OptionKey generates a prefixed option key.
func (k *ScopedKeyer) OptionKey(countsHash, configHash string) string {
	return k.prefix + k.inner.OptionKey(countsHash, configHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(optionHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(optionHash, format)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(id string) string {
	return k.prefix + k.inner.LayoutKey(id)
}
