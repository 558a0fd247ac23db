package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/ir"
	"github.com/signadot/tony-format/inject/libdiff"
	"github.com/signadot/tony-format/inject/parse"
)

func getObjFile(cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d)
}

// loadContext layers the context sources, later ones taking precedence:
// the file at path, the object in $INJECT_CONTEXT, the patch file and the
// refs given with -e.
func loadContext(cc *cli.Context, path, patchPath string, env inject.Context) (inject.Context, error) {
	doc := ir.FromKeyVals(nil)
	if path != "" {
		d, err := getObjFile(cc, path)
		if err != nil {
			return nil, fmt.Errorf("error decoding context %s: %w", path, err)
		}
		doc = d
	}
	osCtx, err := loadEnvContext()
	if err != nil {
		return nil, err
	}
	if osCtx != nil {
		if err := ir.Assign(doc, osCtx); err != nil {
			return nil, fmt.Errorf("context %s: %w", path, err)
		}
	}
	if patchPath != "" {
		p, err := getObjFile(cc, patchPath)
		if err != nil {
			return nil, fmt.Errorf("error decoding patch %s: %w", patchPath, err)
		}
		if doc, err = libdiff.ApplyPatch(doc, p); err != nil {
			return nil, fmt.Errorf("error patching context: %w", err)
		}
	}
	ctx, err := inject.ContextFromNode(doc)
	if err != nil {
		return nil, fmt.Errorf("context %s: %w", path, err)
	}
	for ref, v := range env {
		ctx.Provide(ref, v)
	}
	return ctx, nil
}

