package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/inject"
	"github.com/signadot/tony-format/inject/encode"
	"github.com/signadot/tony-format/inject/permit"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Compact bool `cli:"name=compact desc='output json on one line'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	KeyPrefix  string `cli:"name=keyPrefix desc='prefix of key markers (default <i>:)'"`
	MergeToken string `cli:"name=mergeToken desc='key of merge markers (default <...>)'"`
	ItemToken  string `cli:"name=itemToken desc='key of sole-ref objects (default <i>)'"`
	Strict     bool   `cli:"name=strict desc='reject refs used at more than one marker'"`

	OutFormat *encode.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) buildOpts() []inject.BuildOption {
	return []inject.BuildOption{
		inject.KeyPrefix(cfg.KeyPrefix),
		inject.MergeToken(cfg.MergeToken),
		inject.ItemToken(cfg.ItemToken),
		inject.StrictRefs(cfg.Strict),
	}
}

func (cfg *MainConfig) format() encode.Format {
	f := encode.YAMLFormat
	if cfg.J {
		f = encode.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
		encode.EncodeCompact(cfg.Compact),
	}
	if cfg.Color || (!cfg.colorSet() && encode.IsTerminal(w)) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorSet reports whether -color was given explicitly, possibly as false.
func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

// warn prints injection diagnostics to stderr, in yellow on a terminal.
func (cfg *MainConfig) warn() permit.DiagnosticFunc {
	paint := fmt.Sprintf
	if isatty.IsTerminal(os.Stderr.Fd()) {
		paint = color.New(color.FgYellow).SprintfFunc()
	}
	return func(d permit.Diagnostic) {
		fmt.Fprintln(os.Stderr, paint("warning: %s", d))
	}
}

type FillConfig struct {
	*MainConfig

	Ctx     string `cli:"name=c desc='context file, an object of ref values'"`
	Patch   string `cli:"name=p desc='patch applied to the context'"`
	Only    string `cli:"name=only desc='comma separated refs to resolve'"`
	Present bool   `cli:"name=present desc='resolve only refs the context has'"`
	Omit    string `cli:"name=omit desc='comma separated refs not to resolve'"`
	When    string `cli:"name=when desc='expression over ref and present selecting refs to resolve'"`
	Partial bool   `cli:"name=partial desc='allow refs without a value'"`
	Env     inject.Context

	Fill *cli.Command
}

func (cfg *FillConfig) injectOpts() []inject.InjectOption {
	return policyOpts(cfg.MainConfig, cfg.Only, cfg.Omit, cfg.When, cfg.Present, cfg.Partial)
}

type OnConfig struct {
	*MainConfig

	Template string `cli:"name=t desc='template file'"`
	Ctx      string `cli:"name=c desc='context file, an object of ref values'"`
	Patch    string `cli:"name=p desc='patch applied to the context'"`
	Only     string `cli:"name=only desc='comma separated refs to resolve'"`
	Present  bool   `cli:"name=present desc='resolve only refs the context has'"`
	Omit     string `cli:"name=omit desc='comma separated refs not to resolve'"`
	When     string `cli:"name=when desc='expression over ref and present selecting refs to resolve'"`
	Partial  bool   `cli:"name=partial desc='allow refs without a value'"`
	Env      inject.Context

	On *cli.Command
}

func (cfg *OnConfig) injectOpts() []inject.InjectOption {
	return policyOpts(cfg.MainConfig, cfg.Only, cfg.Omit, cfg.When, cfg.Present, cfg.Partial)
}

type RefsConfig struct {
	*MainConfig

	Refs *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Ctx     string `cli:"name=c desc='context file, an object of ref values'"`
	Patch   string `cli:"name=p desc='patch applied to the context'"`
	Merge   bool   `cli:"name=merge desc='output an RFC 7386 merge patch'"`
	Changes bool   `cli:"name=s desc='output a structural change list'"`
	Partial bool   `cli:"name=partial desc='allow refs without a value'"`
	Env     inject.Context

	Diff *cli.Command
}

func policyOpts(cfg *MainConfig, only, omit, when string, present, partial bool) []inject.InjectOption {
	res := []inject.InjectOption{
		inject.WithDiagnostics(cfg.warn()),
		inject.FailUnresolved(!partial),
	}
	if only != "" {
		res = append(res, inject.Only(splitRefs(only)...))
	}
	if present {
		res = append(res, inject.OnlyPresent())
	}
	if omit != "" {
		res = append(res, inject.Omit(splitRefs(omit)...))
	}
	if when != "" {
		res = append(res, inject.When(when))
	}
	return res
}

func splitRefs(s string) []string {
	var res []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			res = append(res, r)
		}
	}
	return res
}
