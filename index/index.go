// Package index scans a template for markers and records where each ref
// lives.
//
// The scan runs over the template wrapped in a one element array, so that
// the template root can itself be a sole-ref object and every location
// starts with the step I:0.
package index

import (
	"fmt"
	"iter"

	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/marker"
	"github.com/signadot/tony-format/inject/refpath"
)

// Index maps ref names to the encoded location of their marker. Refs are
// kept in discovery order. A ref found twice keeps its first position and
// takes the later location, unless the index was built with Strict.
type Index struct {
	spec  marker.Spec
	order []string
	paths map[string]refpath.Encoded
}

type Entry struct {
	Ref  string          `json:"ref"`
	Path refpath.Encoded `json:"path"`
}

type config struct {
	strict bool
}

type Option func(*config)

// Strict makes a ref that occurs at more than one marker an error.
func Strict(v bool) Option {
	return func(c *config) { c.strict = v }
}

// Wrap returns the one element array the scan and every later resolution
// run against.
func Wrap(doc *ir.Node) *ir.Node {
	if doc == nil {
		doc = ir.Null()
	}
	return ir.FromSlice([]*ir.Node{doc})
}

// Build scans wrapped, as returned by Wrap, for markers.
func Build(wrapped *ir.Node, spec marker.Spec, opts ...Option) (*Index, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	if wrapped == nil || wrapped.Type != ir.ArrayType || len(wrapped.Values) != 1 {
		return nil, fmt.Errorf("index: expected a wrapped document")
	}
	s := &scanner{
		spec:   spec,
		strict: cfg.strict,
		idx: &Index{
			spec:  spec,
			paths: map[string]refpath.Encoded{},
		},
	}
	if err := s.scan(wrapped, 0); err != nil {
		return nil, err
	}
	return s.idx, nil
}

func (x *Index) Spec() marker.Spec {
	return x.spec
}

func (x *Index) Len() int {
	return len(x.order)
}

// Refs returns the ref names in discovery order.
func (x *Index) Refs() []string {
	res := make([]string, len(x.order))
	copy(res, x.order)
	return res
}

func (x *Index) Path(ref string) (refpath.Encoded, bool) {
	p, ok := x.paths[ref]
	return p, ok
}

// All iterates refs and their locations in discovery order.
func (x *Index) All() iter.Seq2[string, refpath.Encoded] {
	return func(yield func(string, refpath.Encoded) bool) {
		for _, ref := range x.order {
			if !yield(ref, x.paths[ref]) {
				return
			}
		}
	}
}

func (x *Index) Entries() []Entry {
	res := make([]Entry, 0, len(x.order))
	for ref, p := range x.All() {
		res = append(res, Entry{Ref: ref, Path: p})
	}
	return res
}

func (x *Index) record(ref string, p refpath.Encoded, strict bool) error {
	prev, present := x.paths[ref]
	if present && strict {
		return fmt.Errorf("%w: %q at %s and %s", ErrDuplicateRef, ref, prev, p)
	}
	if !present {
		x.order = append(x.order, ref)
	}
	x.paths[ref] = p
	return nil
}
