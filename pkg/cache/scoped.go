package cache

// ScopedKeyer prefixes every key produced by an inner Keyer, so artifacts of
// one study can be listed or invalidated together:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "study:"+st.ID+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ChartKey generates a prefixed chart key.
func (k *ScopedKeyer) ChartKey(payloadHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(payloadHash, opts)
}

// DeckKey generates a prefixed deck key.
func (k *ScopedKeyer) DeckKey(projectionHash string, opts DeckKeyOpts) string {
	return k.prefix + k.inner.DeckKey(projectionHash, opts)
}
