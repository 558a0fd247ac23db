package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/encode"
)

// on indexes the template once and fills each target with it. Targets are
// separated by "---" in the output.
func on(cfg *OnConfig, cc *cli.Context, args []string) error {
	args, err := cfg.On.Parse(cc, args)
	if err != nil {
		cfg.On.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Template == "" {
		return fmt.Errorf("%w: on requires a template (-t)", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: on requires at least one target", cli.ErrUsage)
	}
	tmpl, err := getObjFile(cc, cfg.Template)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.Template, err)
	}
	ctx, err := loadContext(cc, cfg.Ctx, cfg.Patch, cfg.Env)
	if err != nil {
		return err
	}
	inj, err := inject.Build(tmpl, cfg.buildOpts()...)
	if err != nil {
		return fmt.Errorf("error indexing %s: %w", cfg.Template, err)
	}
	for i, arg := range args {
		target, err := getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res, err := inj.InjectOn(target, ctx, cfg.injectOpts()...)
		if err != nil {
			return fmt.Errorf("error filling %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return fmt.Errorf("unable to write separator: %w", err)
			}
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
