// Package encode writes ir nodes as JSON or YAML.
package encode

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/tony-format/inject/ir"
)

type encOpts struct {
	format  Format
	colors  *Colors
	compact bool
	indent  int
}

type EncodeOption func(*encOpts)

func EncodeFormat(f Format) EncodeOption {
	return func(o *encOpts) { o.format = f }
}

// EncodeColors colors JSON output. YAML output is never colored.
func EncodeColors(c *Colors) EncodeOption {
	return func(o *encOpts) { o.colors = c }
}

// EncodeCompact writes JSON on a single line.
func EncodeCompact(v bool) EncodeOption {
	return func(o *encOpts) { o.compact = v }
}

func EncodeIndent(n int) EncodeOption {
	return func(o *encOpts) { o.indent = n }
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	o := &encOpts{indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	switch o.format {
	case JSONFormat:
		bw := bufio.NewWriter(w)
		e := &jsonEncoder{w: bw, opts: o}
		if err := e.encode(node, 0); err != nil {
			return err
		}
		if !o.compact {
			bw.WriteByte('\n')
		}
		return bw.Flush()
	case YAMLFormat:
		d, err := yaml.MarshalWithOptions(ToYAMLValue(node), yaml.Indent(o.indent), yaml.IndentSequence(true))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, o.format)
	}
}

// EncodeString is Encode into a string.
func EncodeString(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToYAMLValue converts node into values that go-yaml encodes with object
// keys in node order.
func ToYAMLValue(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToYAMLValue(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToYAMLValue(v)
		}
		return res
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	default:
		return ir.ToAny(node)
	}
}

type jsonEncoder struct {
	w    *bufio.Writer
	opts *encOpts
}

func (e *jsonEncoder) encode(node *ir.Node, depth int) error {
	if node == nil {
		node = ir.Null()
	}
	switch node.Type {
	case ir.ObjectType:
		return e.container(node, depth, '{', '}')
	case ir.ArrayType:
		return e.container(node, depth, '[', ']')
	}
	lit, err := scalarJSON(node)
	if err != nil {
		return err
	}
	e.w.WriteString(e.opts.colors.Color(node.Type, ValueColor)("%s", lit))
	return nil
}

func (e *jsonEncoder) container(node *ir.Node, depth int, open, close byte) error {
	sep := e.opts.colors.Color(node.Type, SepColor)
	e.w.WriteString(sep("%c", open))
	if len(node.Values) == 0 {
		e.w.WriteString(sep("%c", close))
		return nil
	}
	for i, v := range node.Values {
		if i > 0 {
			e.w.WriteString(sep(","))
		}
		e.newline(depth + 1)
		if node.Type == ir.ObjectType {
			k, err := marshalJSON(node.Fields[i].String)
			if err != nil {
				return err
			}
			e.w.WriteString(e.opts.colors.Color(ir.ObjectType, FieldColor)("%s", k))
			e.w.WriteString(sep(":"))
			if !e.opts.compact {
				e.w.WriteByte(' ')
			}
		}
		if err := e.encode(v, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.w.WriteString(sep("%c", close))
	return nil
}

func (e *jsonEncoder) newline(depth int) {
	if e.opts.compact {
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(strings.Repeat(" ", depth*e.opts.indent))
}

func scalarJSON(node *ir.Node) ([]byte, error) {
	switch node.Type {
	case ir.NumberType:
		if node.Int64 != nil {
			return strconv.AppendInt(nil, *node.Int64, 10), nil
		}
		if node.Float64 != nil {
			return json.Marshal(*node.Float64)
		}
		if !json.Valid([]byte(node.Number)) {
			return nil, fmt.Errorf("%w: number %q", ErrBadFormat, node.Number)
		}
		return []byte(node.Number), nil
	default:
		return marshalJSON(ir.ToAny(node))
	}
}

// marshalJSON is json.Marshal without escaping '<', '>' and '&', which
// markers use.
func marshalJSON(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
