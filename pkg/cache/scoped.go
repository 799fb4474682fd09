package cache

// ScopedKeyer namespaces every key from an inner [Keyer]. The CLI and the
// server scope Redis keys under the application name so a shared instance
// can hold other data too.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes keys from inner with scope and a colon.
// A nil inner uses [DefaultKeyer]; an empty scope adds nothing.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope != "" && scope[len(scope)-1] != ':' {
		scope += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: scope}
}

func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

func (k *ScopedKeyer) SourceKey(url string) string {
	return k.prefix + k.inner.SourceKey(url)
}
