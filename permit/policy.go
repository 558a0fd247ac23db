// Package permit decides which refs an injection call may resolve.
//
// In total mode every ref is permitted and a diagnostic is reported for
// each ref the context has no value for. Otherwise the filters that are set
// are combined with a logical and:
//
//   - OnlyPresent: the context has a value for the ref
//   - Only: the ref is in the allow list
//   - Omit: the ref is not in the deny list
//   - When: the expression evaluates to true
//
// A non-total policy with no filters permits every ref.
package permit

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/tony-format/inject/debug"
)

type Policy struct {
	Total       bool     `json:"total"`
	OnlyPresent bool     `json:"onlyPresent,omitempty"`
	Only        []string `json:"only,omitempty"`
	Omit        []string `json:"omit,omitempty"`
	// When is an expr-lang boolean expression over the variables ref
	// (string) and present (bool).
	When string `json:"when,omitempty"`
}

func Default() Policy {
	return Policy{Total: true}
}

// Context is what a policy needs to know about the values on offer.
type Context interface {
	Has(ref string) bool
}

// Func reports whether ref may be resolved.
type Func func(ref string) bool

type DiagnosticKind int

const (
	// Unresolved means a total call permitted a ref the context has no
	// value for. The marker is still removed.
	Unresolved DiagnosticKind = iota
	// NotMergeable means a merge marker's value is not an object.
	NotMergeable
)

func (k DiagnosticKind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case NotMergeable:
		return "not-mergeable"
	default:
		return "<unknown diagnostic>"
	}
}

type Diagnostic struct {
	Kind DiagnosticKind
	Ref  string
	Path string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case Unresolved:
		return fmt.Sprintf("ref %q at %s has no value in the context; total mode requires a value for every ref and removes the marker anyway", d.Ref, d.Path)
	case NotMergeable:
		return fmt.Sprintf("ref %q at %s is a merge marker but its value is not an object", d.Ref, d.Path)
	}
	return fmt.Sprintf("%s: ref %q at %s", d.Kind, d.Ref, d.Path)
}

type DiagnosticFunc func(Diagnostic)

// LogDiagnostic is the default DiagnosticFunc.
func LogDiagnostic(d Diagnostic) {
	debug.Warnf("%s\n", d)
}

// Compile returns the permission function for one call against ctx. Total
// mode reports missing refs to diag, which may be nil.
func (p Policy) Compile(ctx Context, diag DiagnosticFunc) (Func, error) {
	if p.Total {
		return func(ref string) bool {
			if !ctx.Has(ref) && diag != nil {
				diag(Diagnostic{Kind: Unresolved, Ref: ref})
			}
			return true
		}, nil
	}
	var filters []Func
	if p.OnlyPresent {
		filters = append(filters, ctx.Has)
	}
	if p.Only != nil {
		only := slices.Clone(p.Only)
		filters = append(filters, func(ref string) bool {
			return slices.Contains(only, ref)
		})
	}
	if p.Omit != nil {
		omit := slices.Clone(p.Omit)
		filters = append(filters, func(ref string) bool {
			return !slices.Contains(omit, ref)
		})
	}
	if p.When != "" {
		f, err := compileWhen(p.When, ctx)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return func(ref string) bool {
		for _, f := range filters {
			if !f(ref) {
				if debug.Permit() {
					debug.Logf("permit: %q denied\n", ref)
				}
				return false
			}
		}
		return true
	}, nil
}

func compileWhen(src string, ctx Context) (Func, error) {
	prog, err := expr.Compile(src, expr.Env(whenEnv("", false)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadExpr, src, err)
	}
	return func(ref string) bool {
		return runWhen(prog, ref, ctx.Has(ref))
	}, nil
}

func runWhen(prog *vm.Program, ref string, present bool) bool {
	out, err := expr.Run(prog, whenEnv(ref, present))
	if err != nil {
		debug.Warnf("permit: evaluating for %q: %v\n", ref, err)
		return false
	}
	b, _ := out.(bool)
	return b
}

func whenEnv(ref string, present bool) map[string]any {
	return map[string]any{
		"ref":     ref,
		"present": present,
	}
}
