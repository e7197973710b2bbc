package cache

import (
	"strings"
)

// IconKeyOpts are the load parameters that take part in an icon cache key.
type IconKeyOpts struct {
	Format string // payload format, e.g. "svg"
	Source string // source preference, e.g. "local" or "cdn"
}

// Keyer derives cache keys.
type Keyer interface {
	// IconKey returns the key for icon name loaded with opts.
	IconKey(name string, opts IconKeyOpts) string
}

// DefaultKeyer produces readable keys of the form
// "icon:<source>:<format>:<name>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// IconKey implements Keyer.
func (DefaultKeyer) IconKey(name string, opts IconKeyOpts) string {
	return strings.Join([]string{"icon", opts.Source, opts.Format, name}, ":")
}

// ScopedKeyer wraps a Keyer with a prefix so several diagrams or tenants can
// share one backend without seeing each other's entries.
//
//	tenant := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// IconKey implements Keyer.
func (k *ScopedKeyer) IconKey(name string, opts IconKeyOpts) string {
	return k.prefix + k.inner.IconKey(name, opts)
}
