// Package parse reads JSON and YAML documents into ir nodes, keeping the
// order of object keys as written.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/tony-format/inject/ir"
)

var ErrParse = errors.New("parse error")

// Parse decodes a single JSON or YAML document.
func Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromYAMLValue(v)
}

// ParseAll decodes every document of a YAML stream.
func ParseAll(r io.Reader) ([]*ir.Node, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	var res []*ir.Node
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrParse, len(res), err)
		}
		node, err := FromYAMLValue(v)
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
}

// ParseString is Parse for literals.
func ParseString(s string) (*ir.Node, error) {
	return Parse(bytes.TrimSpace([]byte(s)))
}

// MustParse is ParseString for documents known to be valid, such as test
// fixtures.
func MustParse(s string) *ir.Node {
	node, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return node
}

// FromYAMLValue converts a value decoded with yaml.UseOrderedMap.
func FromYAMLValue(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			val, err := FromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: keyString(item.Key), Val: val}
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			val, err := FromYAMLValue(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	case map[string]any:
		return ir.FromAny(x)
	default:
		node, err := ir.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return node, nil
	}
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
