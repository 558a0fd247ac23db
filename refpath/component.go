// Package refpath encodes the location of a template marker as a single
// string that can be stored and later decoded into an ir.Path.
//
// An encoded path is a sequence of steps separated by '|'. Each step is a
// kind letter, a ':' and a value:
//
//	I:0|K:spec|K:ports|I:2|K:name
//
// Kind K is an object key, I an array index and M a merge marker. '|' and
// '\' inside values are escaped with '\'.
package refpath

import "strconv"

type Kind byte

const (
	KeyKind   Kind = 'K'
	MergeKind Kind = 'M'
	IndexKind Kind = 'I'
)

func (k Kind) String() string {
	switch k {
	case KeyKind:
		return "Key"
	case MergeKind:
		return "Merge"
	case IndexKind:
		return "Index"
	default:
		return "<unknown kind>"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// mergeValue is the value recorded for merge steps. It is never used to
// address anything: a merge writes to the parent of its step.
const mergeValue = "..."

// Component is one step of a marker location.
type Component struct {
	Kind  Kind
	Name  string
	Index int
}

func Key(name string) Component {
	return Component{Kind: KeyKind, Name: name}
}

func Merge() Component {
	return Component{Kind: MergeKind, Name: mergeValue}
}

func Index(i int) Component {
	return Component{Kind: IndexKind, Index: i}
}

func (c Component) value() string {
	if c.Kind == IndexKind {
		return strconv.Itoa(c.Index)
	}
	return c.Name
}

func (c Component) String() string {
	return string(c.Kind) + ":" + c.value()
}
