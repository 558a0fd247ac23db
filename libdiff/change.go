package libdiff

import (
	"fmt"

	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/ir"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "<unknown op>"
	}
}

func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Change is one difference between two documents. From is nil for an
// insert and To is nil for a delete.
type Change struct {
	Op   Op       `json:"op"`
	Path string   `json:"path"`
	From *ir.Node `json:"-"`
	To   *ir.Node `json:"-"`
}

func (c Change) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %s", c.Path, short(c.To))
	case Delete:
		return fmt.Sprintf("- %s: %s", c.Path, short(c.From))
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Path, short(c.From), short(c.To))
	}
}

// ToNode renders changes as an array of objects with keys op, path and
// from or to as they apply.
func ToNode(changes []Change) *ir.Node {
	res := make([]*ir.Node, len(changes))
	for i, c := range changes {
		kvs := []ir.KeyVal{
			{Key: "op", Val: ir.FromString(c.Op.String())},
			{Key: "path", Val: ir.FromString(c.Path)},
		}
		if c.From != nil {
			kvs = append(kvs, ir.KeyVal{Key: "from", Val: c.From.Clone()})
		}
		if c.To != nil {
			kvs = append(kvs, ir.KeyVal{Key: "to", Val: c.To.Clone()})
		}
		res[i] = ir.FromKeyVals(kvs)
	}
	return ir.FromSlice(res)
}

func short(n *ir.Node) string {
	s, err := encode.EncodeString(n, encode.EncodeFormat(encode.JSONFormat), encode.EncodeCompact(true))
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}
