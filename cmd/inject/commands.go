package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "inject").
		WithSynopsis("inject [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return injectMain(cfg, cc, args)
		}).
		WithSubs(
			FillCommand(cfg),
			OnCommand(cfg),
			RefsCommand(cfg),
			DiffCommand(cfg))
}

const mainDescription = `inject fills in templates.

A template is any JSON or YAML document carrying markers:

  "<i>:name": ref    key marker: becomes name: <value of ref>
  "<...>": ref       merge marker: the entries of ref are merged into the
                     enclosing object
  {"<i>": ref}       sole-ref object: the object is replaced by the value
                     of ref

Values come from a context document, an object mapping ref names to values,
given with -c and adjusted with -e ref=value and -p patch.`

func FillCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FillConfig{MainConfig: mainCfg, Env: inject.Context{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.Fill, "fill").
		WithAliases("f").
		WithSynopsis("fill [-c ctx] [-e ref=val]... [-only a,b] [-present] [-omit a,b] [-when expr] [-partial] template").
		WithDescription("fill a template from a context and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fill(cfg, cc, args)
		})
}

func OnCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OnConfig{MainConfig: mainCfg, Env: inject.Context{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.On, "on").
		WithSynopsis("on -t template [-c ctx] [-e ref=val]... target...").
		WithDescription("fill documents shaped like a template, using the template's markers").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return on(cfg, cc, args)
		})
}

func RefsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RefsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Refs, "refs").
		WithAliases("r").
		WithSynopsis("refs template").
		WithDescription("list the refs of a template with their kind and location").
		WithRun(func(cc *cli.Context, args []string) error {
			return refs(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Env: inject.Context{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-merge | -s] [-c ctx] [-e ref=val]... template").
		WithDescription("show what filling a template changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func envOpt(env inject.Context) *cli.Opt {
	return &cli.Opt{
		Name:        "e",
		Description: "set ref to a YAML value",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(env)), "(ref=val)"),
	}
}

func envOptTypeFunc(env inject.Context) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}
