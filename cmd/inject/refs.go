package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/ir"
)

func refs(cfg *RefsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Refs.Parse(cc, args)
	if err != nil {
		cfg.Refs.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: refs requires one argument, a template", cli.ErrUsage)
	}
	tmpl, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	inj, err := inject.Build(tmpl, cfg.buildOpts()...)
	if err != nil {
		return fmt.Errorf("error indexing %s: %w", args[0], err)
	}
	res, err := refsNode(inj)
	if err != nil {
		return err
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// refsNode lists the index as objects with the ref, the kind of marker and
// where the marker sits in the template.
func refsNode(inj *inject.Injector) (*ir.Node, error) {
	var items []*ir.Node
	for ref, p := range inj.RefIndex().All() {
		at, err := p.Decode(inj.Spec(), true)
		if err != nil {
			return nil, err
		}
		items = append(items, ir.FromKeyVals([]ir.KeyVal{
			{Key: "ref", Val: ir.FromString(ref)},
			{Key: "kind", Val: ir.FromString(p.Terminal.String())},
			{Key: "path", Val: ir.FromString(at.Next.String())},
		}))
	}
	return ir.FromSlice(items), nil
}
