package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/ir"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects log output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := encode.EncodeString(x, encode.EncodeFormat(encode.JSONFormat), encode.EncodeCompact(true))
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = d
		case bool, string, float64, int:

		default:
		}
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, msg, args...)
}

// Warnf logs msg prefixed with "warning: ", regardless of debug switches.
func Warnf(msg string, args ...any) {
	Logf("warning: "+msg, args...)
}
