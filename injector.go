package inject

import (
	"fmt"
	"strings"
	"sync"

	"github.com/signadot/tony-format/inject/index"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/marker"
	"github.com/signadot/tony-format/inject/permit"
)

type Injector struct {
	spec  marker.Spec
	index *index.Index

	mu      sync.Mutex
	working *ir.Node
}

// Build copies and indexes doc. doc itself is not retained.
func Build(doc *ir.Node, opts ...BuildOption) (*Injector, error) {
	cfg := &BuildConfig{}
	for _, o := range opts {
		o(cfg)
	}
	spec := cfg.Spec.WithDefaults()
	if cfg.Strict {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}
	working := index.Wrap(doc.Clone())
	idx, err := index.Build(working, spec, index.Strict(cfg.Strict))
	if err != nil {
		return nil, err
	}
	return &Injector{
		spec:    spec,
		index:   idx,
		working: working,
	}, nil
}

// RefIndex returns the refs found in the template and their locations.
func (inj *Injector) RefIndex() *index.Index {
	return inj.index
}

func (inj *Injector) Spec() marker.Spec {
	return inj.spec
}

// Inject resolves markers in the Injector's retained copy of the template
// and returns a snapshot of the result. The copy keeps the changes, so
// later calls build on earlier ones. A nil ctx means DefaultStore.
func (inj *Injector) Inject(ctx Context, opts ...InjectOption) (*ir.Node, error) {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return inj.resolve(inj.working, ctx, opts)
}

// InjectOn resolves markers in target, which must have the template's
// shape, and returns a snapshot of the result. target is changed in place.
// If the template root is itself a sole-ref object, only the snapshot
// carries the replacement. A nil ctx means DefaultStore.
func (inj *Injector) InjectOn(target *ir.Node, ctx Context, opts ...InjectOption) (*ir.Node, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ir.ErrType)
	}
	parent, pIndex, pField := target.Parent, target.ParentIndex, target.ParentField
	defer func() {
		target.Parent, target.ParentIndex, target.ParentField = parent, pIndex, pField
	}()
	return inj.resolve(index.Wrap(target), ctx, opts)
}

func (inj *Injector) config(opts []InjectOption) *InjectConfig {
	cfg := &InjectConfig{
		Policy:      permit.Default(),
		Diagnostics: permit.LogDiagnostic,
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

func (inj *Injector) missing(ctx Context) []string {
	var res []string
	for ref := range inj.index.All() {
		if !ctx.Has(ref) {
			res = append(res, ref)
		}
	}
	return res
}

func (inj *Injector) locate(ref string) string {
	p, ok := inj.index.Path(ref)
	if !ok {
		return "?"
	}
	dp, err := p.Decode(inj.spec, true)
	if err != nil {
		return p.Steps
	}
	return unwrapPath(dp)
}

// unwrapPath renders a path without the leading step into the wrapper.
func unwrapPath(p *ir.Path) string {
	if p == nil {
		return "$"
	}
	return p.Next.String()
}

func unresolvedErr(refs []string) error {
	return fmt.Errorf("%w: %s", ErrUnresolved, strings.Join(refs, ", "))
}
