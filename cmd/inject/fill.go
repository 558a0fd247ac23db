package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/encode"
)

func fill(cfg *FillConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fill.Parse(cc, args)
	if err != nil {
		cfg.Fill.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fill requires one argument, a template", cli.ErrUsage)
	}
	tmpl, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	ctx, err := loadContext(cc, cfg.Ctx, cfg.Patch, cfg.Env)
	if err != nil {
		return err
	}
	inj, err := inject.Build(tmpl, cfg.buildOpts()...)
	if err != nil {
		return fmt.Errorf("error indexing %s: %w", args[0], err)
	}
	res, err := inj.Inject(ctx, cfg.injectOpts()...)
	if err != nil {
		return fmt.Errorf("error filling %s: %w", args[0], err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
