package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineColors colors the lines of a text diff. A nil func leaves lines as
// they are.
type LineColors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

// Text returns a line diff of from and to, each line prefixed with "+",
// "-" or " ". It returns "" if the texts are equal.
func Text(from, to string, colors *LineColors) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix, paint := " ", (func(string, ...any) string)(nil)
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
			if colors != nil {
				paint = colors.Insert
			}
		case diffpatch.DiffDelete:
			prefix = "-"
			if colors != nil {
				paint = colors.Delete
			}
		}
		for _, line := range splitLines(d.Text) {
			line = prefix + line
			if paint != nil {
				line = paint("%s", line)
			}
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
