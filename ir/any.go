package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// FromAny converts plain Go values, as produced by encoding/json or a YAML
// decoder, into a node tree. Maps are laid out in sorted key order; use
// FromKeyVals where order matters. A *Node is cloned.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return fromNumberLiteral(string(x)), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case []*Node:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			vals[i] = elt.Clone()
		}
		return FromSlice(vals), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf(".%s: %w", k, err)
			}
			kvs[i] = KeyVal{Key: k, Val: n}
		}
		return FromKeyVals(kvs), nil
	case map[string]*Node:
		m := make(map[string]*Node, len(x))
		for k, n := range x {
			m[k] = n.Clone()
		}
		return FromMap(m), nil
	case []KeyVal:
		kvs := make([]KeyVal, len(x))
		for i := range x {
			kvs[i] = KeyVal{Key: x[i].Key, Val: x[i].Val.Clone()}
		}
		return FromKeyVals(kvs), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T", ErrType, v)
	}
}

// MustAny is FromAny for literals known to convert, such as test fixtures.
func MustAny(v any) *Node {
	n, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return n
}

// ToAny converts a node tree into plain Go values: map[string]any,
// []any, string, bool, int64, float64, json.Number or nil.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return json.Number(node.Number)
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

func fromUint(u uint64) *Node {
	if u > math.MaxInt64 {
		return fromNumberLiteral(strconv.FormatUint(u, 10))
	}
	return FromInt(int64(u))
}

func fromNumberLiteral(s string) *Node {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		res := FromFloat(f)
		res.Number = s
		return res
	}
	return &Node{Type: NumberType, Number: s}
}
