package refpath

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/inject/marker"
)

func TestJoin(t *testing.T) {
	pcs := []Component{Index(0), Key("a"), Index(3), Key("stale")}
	e := Join(pcs, 2)
	if e.Steps != "I:0|K:a|I:3" {
		t.Errorf("got %q", e.Steps)
	}
	if e.Terminal != IndexKind {
		t.Errorf("got terminal %s", e.Terminal)
	}
}

func TestDecode(t *testing.T) {
	s := marker.Default()
	tests := []struct {
		name      string
		pcs       []Component
		resolved  string
		canonical string
	}{
		{
			name:      "key terminal",
			pcs:       []Component{Index(0), Key("c"), Key("cb")},
			resolved:  "$[0].c.cb",
			canonical: "$[0].c.<i>:cb",
		},
		{
			name:      "merge terminal",
			pcs:       []Component{Index(0), Key("c"), Merge()},
			resolved:  "$[0].c.'...'",
			canonical: "$[0].c.'<...>'",
		},
		{
			name:      "index terminal",
			pcs:       []Component{Index(0), Key("list"), Index(2)},
			resolved:  "$[0].list[2]",
			canonical: "$[0].list[2]",
		},
		{
			name:      "separators in keys",
			pcs:       []Component{Index(0), Key("a|b"), Key("c:d\\e")},
			resolved:  "$[0].a|b.'c:d\\\\e'",
			canonical: "$[0].a|b.'<i>:c:d\\\\e'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Join(tt.pcs, len(tt.pcs)-1)
			p, err := e.Decode(s, false)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.String(); got != tt.resolved {
				t.Errorf("resolved: got %q want %q", got, tt.resolved)
			}
			p, err = e.Decode(s, true)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.String(); got != tt.canonical {
				t.Errorf("canonical: got %q want %q", got, tt.canonical)
			}
			pcs, err := e.Components()
			if err != nil {
				t.Fatal(err)
			}
			if len(pcs) != len(tt.pcs) {
				t.Fatalf("got %d components", len(pcs))
			}
			for i := range pcs {
				if pcs[i] != tt.pcs[i] {
					t.Errorf("component %d: got %v want %v", i, pcs[i], tt.pcs[i])
				}
			}
		})
	}
}

func TestDecodeCustomSpec(t *testing.T) {
	s := marker.Spec{KeyPrefix: "@", MergeToken: "@@"}.WithDefaults()
	e := Join([]Component{Index(0), Key("x")}, 1)
	p, err := e.Decode(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != "$[0].@x" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	bad := []Encoded{
		{Terminal: KeyKind, Steps: ""},
		{Terminal: KeyKind, Steps: "X:a"},
		{Terminal: IndexKind, Steps: "I:-1"},
		{Terminal: IndexKind, Steps: "I:zero"},
		{Terminal: KeyKind, Steps: "K"},
		{Terminal: KeyKind, Steps: "I:0"},
	}
	for _, e := range bad {
		if _, err := e.Decode(marker.Default(), false); !errors.Is(err, ErrBadPath) {
			t.Errorf("%q: got %v", e.Steps, err)
		}
	}
}
