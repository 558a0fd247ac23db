package marker

import (
	"strings"

	"github.com/signadot/tony-format/inject/ir"
)

// SoleRef returns the ref of a sole-ref object: an object with exactly one
// entry whose key is the item token and whose value is a non-empty string.
// Any other node, including a wider object that happens to hold the item
// token, is not a sole-ref object.
func (s Spec) SoleRef(node *ir.Node) (string, bool) {
	if node == nil || node.Type != ir.ObjectType || len(node.Fields) != 1 {
		return "", false
	}
	if node.Fields[0].String != s.ItemToken {
		return "", false
	}
	return refOf(node.Values[0])
}

// KeyMarker reports whether key/val is a key marker, returning the key with
// the prefix removed and the ref.
func (s Spec) KeyMarker(key string, val *ir.Node) (name, ref string, ok bool) {
	if key == s.KeyPrefix || key == s.MergeToken || !strings.HasPrefix(key, s.KeyPrefix) {
		return "", "", false
	}
	ref, ok = refOf(val)
	if !ok {
		return "", "", false
	}
	return key[len(s.KeyPrefix):], ref, true
}

// MergeMarker reports whether key/val is a merge marker, returning its ref.
func (s Spec) MergeMarker(key string, val *ir.Node) (string, bool) {
	if key != s.MergeToken {
		return "", false
	}
	return refOf(val)
}

// KeyOf returns the marker spelling of the key name.
func (s Spec) KeyOf(name string) string {
	return s.KeyPrefix + name
}

func refOf(val *ir.Node) (string, bool) {
	if val == nil || val.Type != ir.StringType || !ir.Truth(val) {
		return "", false
	}
	return val.String, true
}
