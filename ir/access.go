package ir

import (
	"fmt"
	"slices"
)

// GetPath parses yPath and returns a copy of the node found there, or nil if
// no such node exists.
func (y *Node) GetPath(yPath string) (*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	return y.Lookup(yp).Clone(), nil
}

// Lookup returns the node at p within y without copying it, or nil if the
// path does not lead to a node.
func (y *Node) Lookup(p *Path) *Node {
	res := y
	for x := p; x != nil; x = x.Next {
		if res == nil {
			return nil
		}
		switch {
		case x.Index != nil:
			if res.Type != ArrayType {
				return nil
			}
			index := *x.Index
			if index < 0 || index >= len(res.Values) {
				return nil
			}
			res = res.Values[index]
		case x.Field != nil:
			res = Get(res, *x.Field)
		default:
			return nil
		}
	}
	return res
}

// SetPath writes val at p, creating intermediate objects and arrays as
// needed. Intermediate leaves are replaced by the container the next step
// requires; a container of the wrong kind is an error. Arrays are padded
// with nulls when an index is past their end. val is attached to y as is; callers wanting to keep val independent
// should pass a clone.
func (y *Node) SetPath(p *Path, val *Node) error {
	if p == nil {
		return fmt.Errorf("%w: cannot set the root", ErrPath)
	}
	cur := y
	for x := p; x != nil; x = x.Next {
		if x.Next == nil {
			return cur.setStep(x, val)
		}
		child := cur.Lookup(&Path{Field: x.Field, Index: x.Index})
		if child == nil || child.Type.IsLeaf() {
			child = containerFor(x.Next)
			if err := cur.setStep(x, child); err != nil {
				return err
			}
		}
		cur = child
	}
	return nil
}

// UnsetPath removes the entry named by the final step of p from its parent.
// Removing an array element nulls it so that sibling positions do not move.
// It reports whether anything was removed.
func (y *Node) UnsetPath(p *Path) bool {
	if p == nil {
		return false
	}
	parent := y.Lookup(p.Parent())
	if parent == nil {
		return false
	}
	last := p.Last()
	switch {
	case last.Field != nil:
		i := parent.FieldIndex(*last.Field)
		if i == -1 {
			return false
		}
		parent.Fields = slices.Delete(parent.Fields, i, i+1)
		parent.Values = slices.Delete(parent.Values, i, i+1)
		parent.reindex(i)
		return true
	case last.Index != nil:
		i := *last.Index
		if parent.Type != ArrayType || i < 0 || i >= len(parent.Values) {
			return false
		}
		parent.setValueAt(i, Null())
		return true
	}
	return false
}

// Assign copies each entry of src into the object dst. Entries already in
// dst are overwritten in place; new entries are appended in src order.
// Entries of dst absent from src are kept. Values are cloned.
func Assign(dst, src *Node) error {
	if dst == nil || dst.Type != ObjectType {
		return fmt.Errorf("%w: assign to %s", ErrType, typeOf(dst))
	}
	if src == nil || src.Type == NullType {
		return nil
	}
	if src.Type != ObjectType {
		return fmt.Errorf("%w: assign from %s", ErrType, src.Type)
	}
	for i, f := range src.Fields {
		v := src.Values[i].Clone()
		if j := dst.FieldIndex(f.String); j != -1 {
			dst.setValueAt(j, v)
			continue
		}
		dst.appendField(f.String, v)
	}
	return nil
}

// IsObject reports whether y is a plain key/value mapping.
func IsObject(y *Node) bool {
	return y != nil && y.Type == ObjectType
}

func (y *Node) setStep(x *Path, val *Node) error {
	switch {
	case x.Field != nil:
		if y.Type != ObjectType {
			return fmt.Errorf("%w: field %q of %s at %s", ErrType, *x.Field, y.Type, y.Path())
		}
		if i := y.FieldIndex(*x.Field); i != -1 {
			y.setValueAt(i, val)
			return nil
		}
		y.appendField(*x.Field, val)
		return nil
	case x.Index != nil:
		if y.Type != ArrayType {
			return fmt.Errorf("%w: index %d of %s at %s", ErrType, *x.Index, y.Type, y.Path())
		}
		i := *x.Index
		if i < 0 {
			return fmt.Errorf("%w: negative index %d", ErrPath, i)
		}
		for len(y.Values) <= i {
			n := Null()
			n.Parent = y
			n.ParentIndex = len(y.Values)
			y.Values = append(y.Values, n)
		}
		y.setValueAt(i, val)
		return nil
	}
	return fmt.Errorf("%w: empty step", ErrPath)
}

func containerFor(x *Path) *Node {
	if x.Index != nil {
		return &Node{Type: ArrayType}
	}
	return &Node{Type: ObjectType}
}

func typeOf(y *Node) string {
	if y == nil {
		return "nothing"
	}
	return y.Type.String()
}
