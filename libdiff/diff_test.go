package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/parse"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{
			name: "equal with reordered keys",
			from: `{a: 1, b: [x, y]}`,
			to:   `{b: [x, y], a: 1}`,
		},
		{
			name: "scalar replace",
			from: `{a: 1}`,
			to:   `{a: "1"}`,
			want: []string{`~ $.a: 1 -> "1"`},
		},
		{
			name: "keys",
			from: `{a: 1, "<i>:b": r}`,
			to:   `{a: 1, b: v}`,
			want: []string{`- $.<i>:b: "r"`, `+ $.b: "v"`},
		},
		{
			name: "array insert in the middle",
			from: `[a, c]`,
			to:   `[a, b, c]`,
			want: []string{`+ $[1]: "b"`},
		},
		{
			name: "array delete",
			from: `[a, b, c]`,
			to:   `[a, c]`,
			want: []string{`- $[1]: "b"`},
		},
		{
			name: "array element replaced",
			from: `[a, {"<i>": ref}, c]`,
			to:   `[a, B, c]`,
			want: []string{`~ $[1]: {"<i>":"ref"} -> "B"`},
		},
		{
			name: "nested container",
			from: `[{x: 1}]`,
			to:   `[{x: 2}]`,
			want: []string{`~ $[0].x: 1 -> 2`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Diff(parse.MustParse(tt.from), parse.MustParse(tt.to)) {
				got = append(got, c.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToNode(t *testing.T) {
	n := ToNode(Diff(parse.MustParse(`{a: 1}`), parse.MustParse(`{b: 2}`)))
	want := parse.MustParse(`[{op: delete, path: $.a, from: 1}, {op: insert, path: $.b, to: 2}]`)
	if !ir.Equal(n, want) {
		t.Errorf("got %v", ir.ToAny(n))
	}
}

func TestText(t *testing.T) {
	if got := Text("a\nb\n", "a\nb\n", nil); got != "" {
		t.Errorf("equal texts gave %q", got)
	}
	got := Text("a\nb\nc\n", "a\nB\nc\n", nil)
	want := " a\n-b\n+B\n c\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
	colors := &LineColors{Insert: func(f string, args ...any) string { return "<" + args[0].(string) + ">" }}
	got = Text("x\n", "y\n", colors)
	if want := "-x\n<+y>\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestMergePatch(t *testing.T) {
	from := parse.MustParse(`{a: 1, b: {c: 2, d: 3}}`)
	to := parse.MustParse(`{a: 1, b: {c: 4}, e: x}`)
	p, err := MergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := parse.MustParse(`{b: {c: 4, d: null}, e: x}`)
	if !ir.Equal(p, want) {
		t.Errorf("got %v", ir.ToAny(p))
	}
	back, err := ApplyPatch(from, p)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, to) {
		t.Errorf("round trip got %v", ir.ToAny(back))
	}
}

func TestApplyJSONPatch(t *testing.T) {
	doc := parse.MustParse(`{a: [1, 2], b: x}`)
	patch := parse.MustParse(`[{op: add, path: /a/-, value: 3}, {op: remove, path: /b}]`)
	got, err := ApplyPatch(doc, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, parse.MustParse(`{a: [1, 2, 3]}`)) {
		t.Errorf("got %v", ir.ToAny(got))
	}
	if _, err := ApplyPatch(doc, parse.MustParse(`"nope"`)); err == nil {
		t.Error("expected error for scalar patch")
	}
}
