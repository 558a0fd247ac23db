// Package marker describes the literal tokens that mark substitutable
// positions in a template and classifies template entries against them.
//
// Three kinds of marker are recognised:
//
//	{"<i>": "ref"}                    the whole value is replaced by ref
//	{"<i>:name": "ref", ...}           the entry becomes name: ref
//	{"<...>": "ref", ...}              the object ref is merged into the parent
package marker

import (
	"fmt"
	"strings"
)

const (
	DefaultKeyPrefix  = "<i>:"
	DefaultMergeToken = "<...>"
	DefaultItemToken  = "<i>"
)

type Spec struct {
	KeyPrefix  string `json:"objectKeyPrefix,omitempty"`
	MergeToken string `json:"objectMerge,omitempty"`
	ItemToken  string `json:"arrayItem,omitempty"`
}

func Default() Spec {
	return Spec{
		KeyPrefix:  DefaultKeyPrefix,
		MergeToken: DefaultMergeToken,
		ItemToken:  DefaultItemToken,
	}
}

// WithDefaults returns s with every empty token replaced by its default.
func (s Spec) WithDefaults() Spec {
	if s.KeyPrefix == "" {
		s.KeyPrefix = DefaultKeyPrefix
	}
	if s.MergeToken == "" {
		s.MergeToken = DefaultMergeToken
	}
	if s.ItemToken == "" {
		s.ItemToken = DefaultItemToken
	}
	return s
}

// Validate checks that all tokens are set and mutually distinct.
func (s Spec) Validate() error {
	toks := []struct{ name, val string }{
		{"key prefix", s.KeyPrefix},
		{"merge token", s.MergeToken},
		{"item token", s.ItemToken},
	}
	for i, a := range toks {
		if a.val == "" {
			return fmt.Errorf("%w: empty %s", ErrBadSpec, a.name)
		}
		for _, b := range toks[i+1:] {
			if a.val == b.val {
				return fmt.Errorf("%w: %s and %s are both %q", ErrBadSpec, a.name, b.name, a.val)
			}
		}
	}
	return nil
}

func (s Spec) String() string {
	return strings.Join([]string{s.KeyPrefix, s.MergeToken, s.ItemToken}, " ")
}
