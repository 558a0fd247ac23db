package libdiff

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/parse"
)

// MergePatch returns the RFC 7386 merge patch turning from into to.
func MergePatch(from, to *ir.Node) (*ir.Node, error) {
	a, err := marshalJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := marshalJSON(to)
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return parse.Parse(d)
}

// ApplyPatch applies patch to doc. An array patch is taken as an RFC 6902
// JSON patch, an object patch as an RFC 7386 merge patch. The result is a
// new node; key order follows encoding/json and may differ from doc.
func ApplyPatch(doc, patch *ir.Node) (*ir.Node, error) {
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	p, err := marshalJSON(patch)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch patch.Type {
	case ir.ArrayType:
		ops, err := jsonpatch.DecodePatch(p)
		if err != nil {
			return nil, fmt.Errorf("json patch: %w", err)
		}
		if out, err = ops.Apply(d); err != nil {
			return nil, fmt.Errorf("json patch: %w", err)
		}
	case ir.ObjectType:
		if out, err = jsonpatch.MergePatch(d, p); err != nil {
			return nil, fmt.Errorf("merge patch: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: patch must be an array or object, got %s", ir.ErrType, patch.Type)
	}
	return parse.Parse(out)
}

func marshalJSON(n *ir.Node) ([]byte, error) {
	s, err := encode.EncodeString(n, encode.EncodeFormat(encode.JSONFormat), encode.EncodeCompact(true))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
