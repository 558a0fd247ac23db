package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/debug"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/parse"
)

const (
	EnvContext = "INJECT_CONTEXT"
)

// loadEnvContext returns the object held in $INJECT_CONTEXT, or nil if it
// is unset.
func loadEnvContext() (*ir.Node, error) {
	envCtx := os.Getenv(EnvContext)
	if envCtx == "" {
		return nil, nil
	}
	node, err := parse.Parse([]byte(envCtx))
	if err != nil {
		return nil, fmt.Errorf("error decoding context $%s: %w", EnvContext, err)
	}
	if !ir.IsObject(node) {
		return nil, fmt.Errorf("error decoding context $%s: wrong type %s", EnvContext, node.Type)
	}
	if debug.Resolve() {
		debug.Logf("loaded context from env: %s\n", node)
	}
	return node, nil
}

// envFunc parses a ref=value argument. Refs are taken whole, so a ref
// containing '.' names a single entry.
func envFunc(env inject.Context, a string) error {
	ref, val, ok := strings.Cut(a, "=")
	if !ok || ref == "" {
		return fmt.Errorf("%w: argument %q expected ref=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.UnmarshalWithOptions([]byte(val), &v, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("%w: value of %s: %w", cli.ErrUsage, ref, err)
	}
	node, err := parse.FromYAMLValue(v)
	if err != nil {
		return err
	}
	env.Provide(ref, node)
	return nil
}
