package inject

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/signadot/tony-format/inject/ir"
)

// Context maps ref names to the values markers resolve to. A ref that is
// present with a null value counts as present.
type Context map[string]*ir.Node

func (c Context) Has(ref string) bool {
	_, ok := c[ref]
	return ok
}

// Provide sets the value for name.
func (c Context) Provide(name string, v *ir.Node) {
	c[name] = v
}

// Refs returns the names in c, sorted.
func (c Context) Refs() []string {
	return slices.Sorted(maps.Keys(c))
}

// ContextOf builds a Context from plain Go values.
func ContextOf(m map[string]any) (Context, error) {
	res := make(Context, len(m))
	for k, v := range m {
		n, err := ir.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("context value %q: %w", k, err)
		}
		res[k] = n
	}
	return res, nil
}

// ContextFromNode builds a Context from the entries of an object node.
func ContextFromNode(node *ir.Node) (Context, error) {
	if !ir.IsObject(node) {
		return nil, fmt.Errorf("%w: context must be an object", ir.ErrType)
	}
	res := make(Context, len(node.Fields))
	for i, f := range node.Fields {
		res[f.String] = node.Values[i]
	}
	return res, nil
}

// Store is a Context that can be shared between goroutines and filled in
// over time.
type Store struct {
	mu  sync.RWMutex
	ctx Context
}

func NewStore() *Store {
	return &Store{ctx: Context{}}
}

func (s *Store) Provide(name string, v *ir.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx[name] = v
}

func (s *Store) Get(name string) (*ir.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.ctx[name]
	return v, ok
}

// Snapshot returns a copy of the store's current contents.
func (s *Store) Snapshot() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.ctx)
}

// DefaultStore is used by Inject and InjectOn when they are given a nil
// Context.
var DefaultStore = NewStore()

// Provide sets name in DefaultStore.
func Provide(name string, v *ir.Node) {
	DefaultStore.Provide(name, v)
}
