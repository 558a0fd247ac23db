package inject

import (
	"fmt"

	"github.com/signadot/tony-format/inject/debug"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/permit"
	"github.com/signadot/tony-format/inject/refpath"
)

// resolve handles every indexed ref against root, a document wrapped by
// index.Wrap, and returns a copy of the unwrapped result.
//
// A permitted ref is written at its location: merged into the parent for a
// merge marker, written in place otherwise. Key and merge markers are then
// removed whether or not the ref was permitted, so unpermitted key and
// merge refs leave nothing behind until a later call resolves them.
// Unpermitted sole-ref objects stay in place.
func (inj *Injector) resolve(root *ir.Node, ctx Context, opts []InjectOption) (*ir.Node, error) {
	cfg := inj.config(opts)
	if ctx == nil {
		ctx = DefaultStore.Snapshot()
	}
	if cfg.Policy.Total && cfg.FailUnresolved {
		if missing := inj.missing(ctx); len(missing) != 0 {
			return nil, unresolvedErr(missing)
		}
	}
	diag := func(d permit.Diagnostic) {
		if cfg.Diagnostics == nil {
			return
		}
		if d.Path == "" {
			d.Path = inj.locate(d.Ref)
		}
		cfg.Diagnostics(d)
	}
	allow, err := cfg.Policy.Compile(ctx, diag)
	if err != nil {
		return nil, err
	}

	for ref, p := range inj.index.All() {
		if allow(ref) {
			if err := inj.write(root, ref, p, ctx, diag); err != nil {
				return nil, fmt.Errorf("ref %q at %s: %w", ref, inj.locate(ref), err)
			}
		}
		switch p.Terminal {
		case refpath.KeyKind, refpath.MergeKind:
			canon, err := p.Decode(inj.spec, true)
			if err != nil {
				return nil, err
			}
			root.UnsetPath(canon)
		}
	}
	return root.Values[0].Clone(), nil
}

func (inj *Injector) write(root *ir.Node, ref string, p refpath.Encoded, ctx Context, diag permit.DiagnosticFunc) error {
	at, err := p.Decode(inj.spec, false)
	if err != nil {
		return err
	}
	val, present := ctx[ref]
	if debug.Resolve() {
		debug.Logf("resolve: %q (%s) at %s present=%t\n", ref, p.Terminal, at, present)
	}
	switch p.Terminal {
	case refpath.MergeKind:
		if !present {
			return nil
		}
		if val != nil && val.Type != ir.ObjectType && val.Type != ir.NullType {
			diag(permit.Diagnostic{Kind: permit.NotMergeable, Ref: ref})
			return nil
		}
		parentPath := at.Parent()
		parent := root.Lookup(parentPath)
		if ir.IsObject(parent) {
			return ir.Assign(parent, val)
		}
		merged := ir.FromKeyVals(nil)
		if err := ir.Assign(merged, val); err != nil {
			return err
		}
		return root.SetPath(parentPath, merged)

	case refpath.KeyKind:
		if !present {
			// like writing an undefined value: the key ends up absent
			root.UnsetPath(at)
			return nil
		}
		return root.SetPath(at, val.Clone())

	default:
		if !present {
			return root.SetPath(at, ir.Null())
		}
		return root.SetPath(at, val.Clone())
	}
}
