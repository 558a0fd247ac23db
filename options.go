package inject

import (
	"github.com/signadot/tony-format/inject/marker"
	"github.com/signadot/tony-format/inject/permit"
)

type BuildConfig struct {
	Spec   marker.Spec
	Strict bool
}

type BuildOption func(*BuildConfig)

// KeyPrefix sets the prefix of key markers. Empty keeps the default "<i>:".
func KeyPrefix(v string) BuildOption {
	return func(c *BuildConfig) { c.Spec.KeyPrefix = v }
}

// MergeToken sets the key of merge markers. Empty keeps the default "<...>".
func MergeToken(v string) BuildOption {
	return func(c *BuildConfig) { c.Spec.MergeToken = v }
}

// ItemToken sets the key of sole-ref objects. Empty keeps the default "<i>".
func ItemToken(v string) BuildOption {
	return func(c *BuildConfig) { c.Spec.ItemToken = v }
}

func WithSpec(s marker.Spec) BuildOption {
	return func(c *BuildConfig) { c.Spec = s }
}

// StrictRefs rejects marker specs whose tokens are empty or coincide, and
// templates that use a ref at more than one marker.
func StrictRefs(v bool) BuildOption {
	return func(c *BuildConfig) { c.Strict = v }
}

type InjectConfig struct {
	Policy         permit.Policy
	Diagnostics    permit.DiagnosticFunc
	FailUnresolved bool
}

type InjectOption func(*InjectConfig)

// Total permits every ref, reporting those missing from the context. This
// is the default. Markers for missing refs are removed all the same.
func Total() InjectOption {
	return func(c *InjectConfig) { c.Policy = permit.Default() }
}

// Only permits just the refs given.
func Only(refs ...string) InjectOption {
	return func(c *InjectConfig) {
		c.Policy.Total = false
		c.Policy.Only = append([]string{}, refs...)
	}
}

// OnlyPresent permits just the refs the context has a value for.
func OnlyPresent() InjectOption {
	return func(c *InjectConfig) {
		c.Policy.Total = false
		c.Policy.OnlyPresent = true
	}
}

// Omit denies the refs given.
func Omit(refs ...string) InjectOption {
	return func(c *InjectConfig) {
		c.Policy.Total = false
		c.Policy.Omit = append([]string{}, refs...)
	}
}

// When permits refs for which the expr-lang expression src, over the
// variables ref and present, is true.
func When(src string) InjectOption {
	return func(c *InjectConfig) {
		c.Policy.Total = false
		c.Policy.When = src
	}
}

func WithPolicy(p permit.Policy) InjectOption {
	return func(c *InjectConfig) { c.Policy = p }
}

// WithDiagnostics replaces the default handler, which logs to stderr.
func WithDiagnostics(f permit.DiagnosticFunc) InjectOption {
	return func(c *InjectConfig) { c.Diagnostics = f }
}

// FailUnresolved makes a total call with refs missing from the context
// return ErrUnresolved without changing anything.
func FailUnresolved(v bool) InjectOption {
	return func(c *InjectConfig) { c.FailUnresolved = v }
}
