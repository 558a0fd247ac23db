package encode

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/tony-format/inject/ir"
)

func doc() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "z", Val: ir.FromInt(1)},
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromBool(true), ir.Null()})},
		{Key: "e", Val: ir.FromKeyVals(nil)},
		{Key: "f", Val: ir.FromFloat(1.5)},
	})
}

func TestEncodeJSON(t *testing.T) {
	got, err := EncodeString(doc(), EncodeFormat(JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "z": 1,
  "a": [
    "x",
    true,
    null
  ],
  "e": {},
  "f": 1.5
}
`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeJSONCompact(t *testing.T) {
	got, err := EncodeString(doc(), EncodeFormat(JSONFormat), EncodeCompact(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":["x",true,null],"e":{},"f":1.5}`
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestEncodeYAMLKeepsOrder(t *testing.T) {
	got, err := EncodeString(doc(), EncodeFormat(YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	zi, ai, fi := strings.Index(got, "z:"), strings.Index(got, "a:"), strings.Index(got, "f:")
	if zi == -1 || ai == -1 || fi == -1 || !(zi < ai && ai < fi) {
		t.Errorf("order not kept:\n%s", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"j": JSONFormat, "json": JSONFormat, "y": YAMLFormat, "yaml": YAMLFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("%s: got %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
}

func TestColorsNil(t *testing.T) {
	var c *Colors
	if got := c.Color(ir.StringType, ValueColor)("%s", "x"); got != "x" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeJSONMarkersUnescaped(t *testing.T) {
	n := ir.FromKeyVals([]ir.KeyVal{{Key: "<i>:a", Val: ir.FromString("<&>")}})
	got, err := EncodeString(n, EncodeFormat(JSONFormat), EncodeCompact(true))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"<i>:a":"<&>"}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
