package index

import (
	"github.com/signadot/tony-format/inject/debug"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/marker"
	"github.com/signadot/tony-format/inject/refpath"
)

type scanner struct {
	spec   marker.Spec
	strict bool
	idx    *Index
	pcs    []refpath.Component
}

// scan walks node, which sits below the component at level-1.
func (s *scanner) scan(node *ir.Node, level int) error {
	switch node.Type {
	case ir.ArrayType:
		for i, item := range node.Values {
			s.set(level, refpath.Index(i))
			if ref, ok := s.spec.SoleRef(item); ok {
				if err := s.record(ref, level); err != nil {
					return err
				}
				continue
			}
			if err := s.scan(item, level+1); err != nil {
				return err
			}
		}
	case ir.ObjectType:
		// the object replaces the slot its parent set up for it
		if ref, ok := s.spec.SoleRef(node); ok {
			return s.record(ref, level-1)
		}
		for i, field := range node.Fields {
			key, val := field.String, node.Values[i]
			if name, ref, ok := s.spec.KeyMarker(key, val); ok {
				s.set(level, refpath.Key(name))
				if err := s.record(ref, level); err != nil {
					return err
				}
				continue
			}
			if ref, ok := s.spec.MergeMarker(key, val); ok {
				s.set(level, refpath.Merge())
				if err := s.record(ref, level); err != nil {
					return err
				}
				continue
			}
			s.set(level, refpath.Key(key))
			if err := s.scan(val, level+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *scanner) set(level int, pc refpath.Component) {
	if level < len(s.pcs) {
		s.pcs[level] = pc
		return
	}
	s.pcs = append(s.pcs, pc)
}

func (s *scanner) record(ref string, level int) error {
	p := refpath.Join(s.pcs, level)
	if debug.Scan() {
		debug.Logf("scan: ref %q at %s (%s)\n", ref, p, p.Terminal)
	}
	return s.idx.record(ref, p, s.strict)
}
