package inject

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/parse"
	"github.com/signadot/tony-format/inject/permit"
)

func ctxOf(t *testing.T, s string) Context {
	t.Helper()
	ctx, err := ContextFromNode(parse.MustParse(s))
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func build(t *testing.T, s string, opts ...BuildOption) *Injector {
	t.Helper()
	inj, err := Build(parse.MustParse(s), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return inj
}

func checkDoc(t *testing.T, got *ir.Node, want string) {
	t.Helper()
	w := parse.MustParse(want)
	if !ir.Equal(got, w) {
		t.Errorf("mismatch (-want +got):\n%s", cmp.Diff(ir.ToAny(w), ir.ToAny(got)))
	}
}

type injectTest struct {
	name string
	tmpl string
	ctx  string
	want string
}

var injectTests = []injectTest{
	{
		name: "root key",
		tmpl: `{"<i>:mike": keyMike}`,
		ctx:  `{keyMike: "A string value"}`,
		want: `{mike: "A string value"}`,
	},
	{
		name: "root key object value",
		tmpl: `{"<i>:mike": keyMike}`,
		ctx:  `{keyMike: {mike: js, kyle: q}}`,
		want: `{mike: {mike: js, kyle: q}}`,
	},
	{
		name: "root sole ref",
		tmpl: `{"<i>": ref}`,
		ctx:  `{ref: "A string value"}`,
		want: `"A string value"`,
	},
	{
		name: "root sole ref object value",
		tmpl: `{"<i>": ref}`,
		ctx:  `{ref: {mike: js, kyle: q}}`,
		want: `{mike: js, kyle: q}`,
	},
	{
		name: "root merge",
		tmpl: `{a: A, "<...>": merged, c: C}`,
		ctx:  `{merged: {j: J, k: K}}`,
		want: `{a: A, c: C, j: J, k: K}`,
	},
	{
		name: "root merge conflict",
		tmpl: `{a: A, "<...>": merged, c: C}`,
		ctx:  `{merged: {j: J, c: conflict-c}}`,
		want: `{a: A, c: conflict-c, j: J}`,
	},
	{
		name: "root array item",
		tmpl: `[a, {"<i>": ref}, c]`,
		ctx:  `{ref: B}`,
		want: `[a, B, c]`,
	},
	{
		name: "deep key",
		tmpl: `{a: A, b: B, c: {ca: CA, "<i>:cb": keyCB, cc: CC}, d: D}`,
		ctx:  `{keyCB: Mike CB}`,
		want: `{a: A, b: B, c: {ca: CA, cb: Mike CB, cc: CC}, d: D}`,
	},
	{
		name: "deep merge",
		tmpl: `{a: A, b: B, c: {ca: CA, "<...>": keyCB, cc: CC}, d: D}`,
		ctx:  `{keyCB: {cb: Just CB, cc: Just CC}}`,
		want: `{a: A, b: B, c: {ca: CA, cb: Just CB, cc: Just CC}, d: D}`,
	},
	{
		name: "sole ref as object value",
		tmpl: `{a: {"<i>": ref}, b: [1, {c: {"<i>": ref2}}]}`,
		ctx:  `{ref: 1, ref2: {x: y}}`,
		want: `{a: 1, b: [1, {c: {x: y}}]}`,
	},
	{
		name: "deep array items",
		tmpl: `
a: A
c:
  - CA
  - {"<i>": refCB}
  - CC
  - - CDC
    - CDB
    - {"<i>": refCDC}
    - cdd: [CDDA, CDDB, CDDC, {"<i>": refCDDD}]
  - CE
d: D
`,
		ctx: `{refCB: kyle CB, refCDC: kyle CDC, refCDDD: {name: kyle CDDD}}`,
		want: `
a: A
c:
  - CA
  - kyle CB
  - CC
  - - CDC
    - CDB
    - kyle CDC
    - cdd: [CDDA, CDDB, CDDC, {name: kyle CDDD}]
  - CE
d: D
`,
	},
	{
		name: "everything at once",
		tmpl: `
a: A
"<i>:jack": oh
"<...>": rootMerged
arr:
  - one
  - {"<i>": two}
  - three
  - key: four
    "<i>:check": out
    "<...>": merged
    cook: it
    list: [la, lb, {"<i>": make}, ld, {"<i>": long}]
  - five
`,
		ctx: `
oh: "<<HO MY God>>"
out: "<<out>>"
make: "<<LOVE>>"
two: "<<what>>"
long: {long: "<<dragon>>"}
merged: {"merged - kyle": qin, "merged - jack": chen}
rootMerged: {"rootMerged-MIKE": Koliang}
`,
		want: `
a: A
arr:
  - one
  - "<<what>>"
  - three
  - key: four
    cook: it
    list: [la, lb, "<<LOVE>>", ld, {long: "<<dragon>>"}]
    check: "<<out>>"
    "merged - kyle": qin
    "merged - jack": chen
  - five
jack: "<<HO MY God>>"
"rootMerged-MIKE": Koliang
`,
	},
	{
		name: "wide object holding the item token is ordinary",
		tmpl: `{x: {"<i>": notARef, other: 1}}`,
		ctx:  `{notARef: replaced}`,
		want: `{x: {"<i>": notARef, other: 1}}`,
	},
}

func TestInject(t *testing.T) {
	for _, tt := range injectTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := build(t, tt.tmpl).Inject(ctxOf(t, tt.ctx))
			if err != nil {
				t.Fatal(err)
			}
			checkDoc(t, got, tt.want)
		})
	}
}

func TestInjectNoMarkers(t *testing.T) {
	docs := []string{
		`null`,
		`"scalar"`,
		`[1, [2, [3]], {}]`,
		`{a: {b: [true, null, 1.5]}, "<i>": x, y: z}`,
		`{"<i>:": r, "<...>": "", "<i>:k": ""}`,
	}
	for _, d := range docs {
		got, err := build(t, d).Inject(ctxOf(t, `{x: 1, r: 2}`))
		if err != nil {
			t.Fatal(err)
		}
		checkDoc(t, got, d)
	}
}

func TestInjectDoesNotAliasTemplateOrContext(t *testing.T) {
	tmpl := parse.MustParse(`{a: {"<i>:b": ref}}`)
	inj, err := Build(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	ctx := ctxOf(t, `{ref: {deep: 1}}`)
	got, err := inj.Inject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, tmpl, `{a: {"<i>:b": ref}}`)
	ir.Get(ir.Get(got, "a"), "b").Fields[0].String = "changed"
	checkDoc(t, ctx["ref"], `{deep: 1}`)
	again, err := inj.Inject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, again, `{a: {b: {deep: 1}}}`)
}

func TestInjectAccumulates(t *testing.T) {
	inj := build(t, `
a:
  mm: MM
  "<i>:look": up
  "<i>:protocol": http
  nn: NN
b: B
"<i>:dict": dictionary
`)
	got, err := inj.Inject(ctxOf(t, `{http: HTTP}`), OnlyPresent())
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{a: {mm: MM, protocol: HTTP, nn: NN}, b: B}`)

	got, err = inj.Inject(ctxOf(t, `{up: UP, dictionary: Youdao}`), OnlyPresent())
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{a: {mm: MM, look: UP, protocol: HTTP, nn: NN}, b: B, dict: Youdao}`)
}

func TestInjectAccumulatesWithOnly(t *testing.T) {
	inj := build(t, `{x: {"<i>:a": A}, y: [{"<i>": B}], "<...>": C}`)
	if _, err := inj.Inject(ctxOf(t, `{A: a}`), Only("A")); err != nil {
		t.Fatal(err)
	}
	got, err := inj.Inject(ctxOf(t, `{B: b}`), Only("B"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{x: {a: a}, y: [b]}`)
	got, err = inj.Inject(ctxOf(t, `{C: {c: 1}}`), Only("C"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{x: {a: a}, y: [b], c: 1}`)
}

func TestUnpermittedSoleRefStays(t *testing.T) {
	got, err := build(t, `[{"<i>": A}, {"<i>": B}]`).Inject(ctxOf(t, `{A: 1, B: 2}`), Omit("B"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `[1, {"<i>": B}]`)
}

func TestInjectOn(t *testing.T) {
	const tmpl = `{name: {"<i>": n}, meta: {"<i>:id": id, "<...>": labels}}`
	inj := build(t, tmpl)

	t1 := parse.MustParse(tmpl)
	t2 := parse.MustParse(tmpl)
	s1, err := inj.InjectOn(t1, ctxOf(t, `{n: one, id: 1, labels: {l: x}}`))
	if err != nil {
		t.Fatal(err)
	}
	s2, err := inj.InjectOn(t2, ctxOf(t, `{n: two, id: 2, labels: {l: y}}`))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, s1, `{name: one, meta: {id: 1, l: x}}`)
	checkDoc(t, s2, `{name: two, meta: {id: 2, l: y}}`)
	checkDoc(t, t1, `{name: one, meta: {id: 1, l: x}}`)
	checkDoc(t, t2, `{name: two, meta: {id: 2, l: y}}`)
	if t1.Parent != nil {
		t.Error("target left attached to wrapper")
	}

	// snapshots are independent of targets
	ir.Get(t1, "name").String = "changed"
	checkDoc(t, s1, `{name: one, meta: {id: 1, l: x}}`)

	// the injector's own copy is untouched
	got, err := inj.Inject(ctxOf(t, `{n: own, id: 0, labels: {}}`))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{name: own, meta: {id: 0}}`)
}

func TestInjectOnRootSoleRef(t *testing.T) {
	inj := build(t, `{"<i>": r}`)
	target := parse.MustParse(`{"<i>": r}`)
	got, err := inj.InjectOn(target, ctxOf(t, `{r: [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `[1, 2]`)
}

func TestInjectOnMismatchedTarget(t *testing.T) {
	inj := build(t, `{a: {"<i>:b": r}}`)
	_, err := inj.InjectOn(parse.MustParse(`{a: [1]}`), ctxOf(t, `{r: 1}`))
	if !errors.Is(err, ir.ErrType) {
		t.Errorf("got %v", err)
	}
	if _, err := inj.InjectOn(nil, Context{}); !errors.Is(err, ir.ErrType) {
		t.Errorf("nil target: got %v", err)
	}
}

func TestTotalModeMissing(t *testing.T) {
	tmpl := `{k: {"<i>:x": X}, l: [{"<i>": Y}], m: {"<...>": Z, keep: 1}, present: {"<i>:p": P}}`
	var diags []permit.Diagnostic
	got, err := build(t, tmpl).Inject(ctxOf(t, `{P: here}`), WithDiagnostics(func(d permit.Diagnostic) {
		diags = append(diags, d)
	}))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{k: {}, l: [null], m: {keep: 1}, present: {p: here}}`)
	refs := []string{}
	for _, d := range diags {
		if d.Kind != permit.Unresolved {
			t.Errorf("unexpected diagnostic %s", d)
		}
		refs = append(refs, d.Ref)
	}
	if diff := cmp.Diff([]string{"X", "Y", "Z"}, refs); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
	if diags[0].Path != "$.k.<i>:x" {
		t.Errorf("got path %q", diags[0].Path)
	}
}

func TestFailUnresolved(t *testing.T) {
	inj := build(t, `{"<i>:a": A, "<i>:b": B}`)
	_, err := inj.Inject(ctxOf(t, `{A: 1}`), FailUnresolved(true))
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("got %v", err)
	}
	got, err := inj.Inject(ctxOf(t, `{A: 1, B: 2}`), FailUnresolved(true))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{a: 1, b: 2}`)
}

func TestMergeNotObject(t *testing.T) {
	var diags []permit.Diagnostic
	got, err := build(t, `{a: 1, "<...>": m}`).Inject(ctxOf(t, `{m: [1]}`), WithDiagnostics(func(d permit.Diagnostic) {
		diags = append(diags, d)
	}))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{a: 1}`)
	if len(diags) != 1 || diags[0].Kind != permit.NotMergeable {
		t.Errorf("got %v", diags)
	}
}

func TestWhen(t *testing.T) {
	inj := build(t, `{"<i>:db": db.host, "<i>:app": app.name}`)
	got, err := inj.Inject(ctxOf(t, `{db.host: h, app.name: n}`), When(`ref startsWith "db."`))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{db: h}`)
	if _, err := inj.Inject(Context{}, When(`ref +`)); !errors.Is(err, permit.ErrBadExpr) {
		t.Errorf("got %v", err)
	}
}

func TestCustomTokens(t *testing.T) {
	inj := build(t, `{"$name": n, "$$": m, l: [{"$ref": i}]}`,
		KeyPrefix("$"), MergeToken("$$"), ItemToken("$ref"))
	got, err := inj.Inject(ctxOf(t, `{n: N, m: {x: 1}, i: I}`))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, got, `{name: N, l: [I], x: 1}`)
}

func TestStrictRefs(t *testing.T) {
	_, err := Build(parse.MustParse(`{"<i>:a": r, b: {"<i>:c": r}}`), StrictRefs(true))
	if err == nil {
		t.Error("expected duplicate ref error")
	}
	_, err = Build(parse.MustParse(`{}`), StrictRefs(true), KeyPrefix("x"), MergeToken("x"))
	if err == nil {
		t.Error("expected bad spec error")
	}
	inj := build(t, `{"<i>:a": r, b: {"<i>:c": r}}`)
	got, err := inj.Inject(ctxOf(t, `{r: 1}`))
	if err != nil {
		t.Fatal(err)
	}
	// the later marker takes the ref; the earlier one is no longer indexed
	checkDoc(t, got, `{"<i>:a": r, b: {c: 1}}`)
}

func TestRefIndex(t *testing.T) {
	inj := build(t, `{"<i>:a": A, l: [{"<i>": B}], "<...>": C}`)
	var got []string
	for _, e := range inj.RefIndex().Entries() {
		got = append(got, e.Ref+"="+e.Path.Steps)
	}
	want := []string{"A=I:0|K:a", "B=I:0|K:l|I:0", "C=I:0|M:..."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
