package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/libdiff"
)

// diff fills a template and shows how the result differs from the
// template. Like diff(1) it exits 1 when there is a difference.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: diff requires one argument, a template", cli.ErrUsage)
	}
	if cfg.Merge && cfg.Changes {
		return fmt.Errorf("%w: must specify at most one of -merge -s", cli.ErrUsage)
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
	res, err := inj.Inject(ctx,
		inject.WithDiagnostics(cfg.warn()),
		inject.FailUnresolved(!cfg.Partial))
	if err != nil {
		return fmt.Errorf("error filling %s: %w", args[0], err)
	}

	changes := libdiff.Diff(tmpl, res)
	if len(changes) == 0 {
		return nil
	}
	switch {
	case cfg.Merge:
		p, err := libdiff.MergePatch(tmpl, res)
		if err != nil {
			return err
		}
		if err := encode.Encode(p, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding patch: %w", err)
		}
	case cfg.Changes:
		if err := encode.Encode(libdiff.ToNode(changes), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding changes: %w", err)
		}
	default:
		encOpts := []encode.EncodeOption{encode.EncodeFormat(cfg.format())}
		from, err := encode.EncodeString(tmpl, encOpts...)
		if err != nil {
			return err
		}
		to, err := encode.EncodeString(res, encOpts...)
		if err != nil {
			return err
		}
		var colors *libdiff.LineColors
		if cfg.Color || (!cfg.colorSet() && encode.IsTerminal(cc.Out)) {
			colors = &libdiff.LineColors{
				Insert: color.New(color.FgGreen).SprintfFunc(),
				Delete: color.New(color.FgRed).SprintfFunc(),
			}
		}
		if _, err := cc.Out.Write([]byte(libdiff.Text(from, to, colors))); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
