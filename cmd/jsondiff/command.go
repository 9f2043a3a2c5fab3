package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/qri-io/jsondiff"
)

// Options configures a run of the jsondiff command
type Options struct {
	Config      string `cli:"name=config desc='settings file, yaml or json'"`
	Section     string `cli:"name=section desc='colon separated path to settings inside the config file'"`
	EquateEmpty bool   `cli:"name=equate-empty desc='treat empty arrays and null as equal'"`
	Pretty      bool   `cli:"name=pretty desc='print one line per difference instead of json'"`
	Color       bool   `cli:"name=color desc='colorize pretty output'"`
	Stats       bool   `cli:"name=stats desc='print a summary of the comparison'"`
	LogLevel    string `cli:"name=log-level desc='log level: debug, info, warn, error'"`
	LogFormat   string `cli:"name=log-format desc='log format: text or json'"`

	Ignore        []string
	IgnoreMissing []string
	Epsilon       *float64
	TimeTolerance *time.Duration

	Command *cli.Command
}

// MainCommand builds the jsondiff command
func MainCommand() *cli.Command {
	cfg := &Options{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "ignore",
			Description: "ignore differences at path, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.pathOpt(&cfg.Ignore), "(path)"),
		},
		{
			Name:        "ignore-missing",
			Description: "ignore differences at path, including when target lacks it. may be repeated",
			Type:        cli.NamedFuncOpt(cfg.pathOpt(&cfg.IgnoreMissing), "(path)"),
		},
		{
			Name:        "epsilon",
			Description: "relative tolerance for comparing floats",
			Type:        cli.NamedFuncOpt(cfg.epsilonOpt(), "(float)"),
		},
		{
			Name:        "time-tolerance",
			Description: "tolerance for comparing RFC 3339 timestamps, eg. 1s",
			Type:        cli.NamedFuncOpt(cfg.toleranceOpt(), "(duration)"),
		},
	}...)

	return cli.NewCommandAt(&cfg.Command, "jsondiff").
		WithSynopsis("jsondiff [opts] source.json target.json").
		WithDescription("jsondiff compares two json documents. use - to read one of them from stdin.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func (cfg *Options) pathOpt(dst *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		if _, err := jsondiff.ParsePath(v); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*dst = append(*dst, v)
		return v, nil
	})
}

func (cfg *Options) epsilonOpt() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: epsilon %q: %w", cli.ErrUsage, v, err)
		}
		if !(f >= 0) {
			return nil, fmt.Errorf("%w: epsilon must not be negative, got %v", cli.ErrUsage, f)
		}
		cfg.Epsilon = &f
		return f, nil
	})
}

func (cfg *Options) toleranceOpt() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: time tolerance %q: %w", cli.ErrUsage, v, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: time tolerance must not be negative, got %s", cli.ErrUsage, d)
		}
		cfg.TimeTolerance = &d
		return d, nil
	})
}

func run(cfg *Options, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		cfg.Command.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: jsondiff requires 2 args, got %v", cli.ErrUsage, args)
	}

	differs, err := cfg.compare(cc.In, cc.Out, os.Stderr, args[0], args[1], cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// useColor reports whether pretty output should be colorized. an explicit
// -color wins, otherwise color is on when w is a terminal
func (cfg *Options) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Command.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
