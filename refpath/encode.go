package refpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/marker"
)

const (
	stepSep  = '|'
	kindSep  = ':'
	escapeCh = '\\'
)

// Encoded is a joined path together with the kind of its final step.
type Encoded struct {
	Terminal Kind   `json:"terminal"`
	Steps    string `json:"steps"`
}

func (e Encoded) String() string {
	return e.Steps
}

// Join encodes pcs[0..level], inclusive.
func Join(pcs []Component, level int) Encoded {
	var b strings.Builder
	for i, pc := range pcs[:level+1] {
		if i > 0 {
			b.WriteByte(stepSep)
		}
		b.WriteByte(byte(pc.Kind))
		b.WriteByte(kindSep)
		escape(&b, pc.value())
	}
	return Encoded{Terminal: pcs[level].Kind, Steps: b.String()}
}

// Components decodes e back into its steps.
func (e Encoded) Components() ([]Component, error) {
	if e.Steps == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadPath)
	}
	raw := split(e.Steps)
	res := make([]Component, len(raw))
	for i, step := range raw {
		if len(step) < 2 || step[1] != kindSep {
			return nil, fmt.Errorf("%w: step %q", ErrBadPath, step)
		}
		val := step[2:]
		switch k := Kind(step[0]); k {
		case KeyKind:
			res[i] = Key(val)
		case MergeKind:
			res[i] = Component{Kind: MergeKind, Name: val}
		case IndexKind:
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: index %q", ErrBadPath, val)
			}
			res[i] = Index(n)
		default:
			return nil, fmt.Errorf("%w: kind %q", ErrBadPath, step[0])
		}
	}
	if last := res[len(res)-1]; last.Kind != e.Terminal {
		return nil, fmt.Errorf("%w: terminal %s but last step is %s", ErrBadPath, e.Terminal, last.Kind)
	}
	return res, nil
}

// Decode turns e into an ir.Path.
//
// With canonical false the last step names where a resolved value is
// written: the key without its marker prefix, or the array index. With
// canonical true the last step is spelled the way the marker was written in
// the template (prefix plus key, or the merge token), which is the entry to
// delete once the marker is handled.
func (e Encoded) Decode(s marker.Spec, canonical bool) (*ir.Path, error) {
	pcs, err := e.Components()
	if err != nil {
		return nil, err
	}
	steps := make([]*ir.Path, len(pcs))
	last := len(pcs) - 1
	for i, pc := range pcs {
		switch pc.Kind {
		case IndexKind:
			steps[i] = ir.IndexStep(pc.Index)
		case KeyKind:
			if canonical && i == last {
				steps[i] = ir.FieldStep(s.KeyOf(pc.Name))
				continue
			}
			steps[i] = ir.FieldStep(pc.Name)
		case MergeKind:
			if canonical && i == last {
				steps[i] = ir.FieldStep(s.MergeToken)
				continue
			}
			steps[i] = ir.FieldStep(pc.Name)
		}
	}
	return ir.PathOf(steps...), nil
}

func escape(b *strings.Builder, v string) {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == stepSep || c == escapeCh {
			b.WriteByte(escapeCh)
		}
		b.WriteByte(c)
	}
}

func split(s string) []string {
	var (
		res     []string
		cur     []byte
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur = append(cur, c)
			escaped = false
		case c == escapeCh:
			escaped = true
		case c == stepSep:
			res = append(res, string(cur))
			cur = cur[:0]
		default:
			cur = append(cur, c)
		}
	}
	return append(res, string(cur))
}
