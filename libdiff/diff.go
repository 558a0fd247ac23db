package libdiff

import (
	"strconv"

	"github.com/signadot/tony-format/inject/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changes turning from into to, in document order.
// Objects are compared key by key regardless of key order. Arrays are
// aligned on element summaries so that an insert or delete in the middle
// does not show up as a run of replacements.
func Diff(from, to *ir.Node) []Change {
	d := &differ{}
	d.diff(from, to, "$")
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(op Op, path string, from, to *ir.Node) {
	d.changes = append(d.changes, Change{Op: op, Path: path, From: from, To: to})
}

func (d *differ) diff(from, to *ir.Node, path string) {
	if from.Type != to.Type {
		d.add(Replace, path, from, to)
		return
	}
	switch from.Type {
	case ir.ObjectType:
		d.object(from, to, path)
	case ir.ArrayType:
		d.array(from, to, path)
	default:
		if !ir.Equal(from, to) {
			d.add(Replace, path, from, to)
		}
	}
}

func (d *differ) object(from, to *ir.Node, path string) {
	toMap := ir.ToMap(to)
	for i, f := range from.Fields {
		p := path + "." + fieldString(f.String)
		tv, ok := toMap[f.String]
		if !ok {
			d.add(Delete, p, from.Values[i], nil)
			continue
		}
		d.diff(from.Values[i], tv, p)
	}
	for i, f := range to.Fields {
		if from.FieldIndex(f.String) == -1 {
			d.add(Insert, path+"."+fieldString(f.String), nil, to.Values[i])
		}
	}
}

// array diffs the sequences of element summaries, each summary mapped to a
// rune, and recurses into elements that line up with equal summaries.
// A delete directly followed by an insert becomes replacements.
func (d *differ) array(from, to *ir.Node, path string) {
	m := map[string]rune{}
	fromRunes := summarize(m, from)
	toRunes := summarize(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	at := func(i int) string { return path + "[" + strconv.Itoa(i) + "]" }
	for i := 0; i < len(diffs); i++ {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffEqual:
			for range n {
				d.diff(from.Values[fi], to.Values[ti], at(ti))
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = len([]rune(diffs[i+1].Text))
				i++
			}
			paired := min(n, ins)
			for range paired {
				d.diff(from.Values[fi], to.Values[ti], at(ti))
				fi++
				ti++
			}
			for range n - paired {
				d.add(Delete, at(ti), from.Values[fi], nil)
				fi++
			}
			for range ins - paired {
				d.add(Insert, at(ti), nil, to.Values[ti])
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				d.add(Insert, at(ti), nil, to.Values[ti])
				ti++
			}
		}
	}
}

func summarize(m map[string]rune, node *ir.Node) []rune {
	res := make([]rune, len(node.Values))
	for i, v := range node.Values {
		s := summary(v)
		r, ok := m[s]
		if !ok {
			// stay clear of the surrogate range
			r = rune(0xE000 + len(m))
			m[s] = r
		}
		res[i] = r
	}
	return res
}

// summary identifies containers by type only, so that changed containers
// still line up and get diffed element by element.
func summary(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		return node.Type.String()
	}
	return node.Type.String() + "-" + short(node)
}

func fieldString(f string) string {
	return ir.PathOf(ir.FieldStep(f)).String()[2:]
}
