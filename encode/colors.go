package encode

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/signadot/tony-format/inject/ir"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	colors.Map[Colorable{Type: ir.ObjectType, Attr: FieldColor}] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[Colorable{Type: ir.StringType, Attr: ValueColor}] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[Colorable{Type: ir.NumberType, Attr: ValueColor}] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[Colorable{Type: ir.BoolType, Attr: ValueColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Type: ir.NullType, Attr: ValueColor}] = color.RGB(168, 0, 196).SprintfFunc()
	for _, t := range []ir.Type{ir.ObjectType, ir.ArrayType} {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(96, 96, 96).SprintfFunc()
	}
	return colors
}

func (c *Colors) Color(t ir.Type, attr ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	f, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if !ok {
		return c.Default
	}
	return f
}

// IsTerminal reports whether w is a terminal, in which case callers may
// want colored output.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}
