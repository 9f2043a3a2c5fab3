package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/qri-io/jsondiff"
	"github.com/qri-io/jsondiff/config"
	"github.com/qri-io/jsondiff/internal/logging"
)

// compare runs a comparison of the documents at sourcePath & targetPath,
// writing results to out and logs to errOut. it reports whether the
// documents differ
func (cfg *Options) compare(in io.Reader, out, errOut io.Writer, sourcePath, targetPath string, colorTTY bool) (bool, error) {
	if sourcePath == "-" && targetPath == "-" {
		return false, fmt.Errorf("%w: only one of source and target can be read from stdin", cli.ErrUsage)
	}

	logger := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, errOut)

	opts, err := cfg.diffOptions(logger)
	if err != nil {
		return false, err
	}

	source, err := readDocument(in, sourcePath)
	if err != nil {
		return false, err
	}
	target, err := readDocument(in, targetPath)
	if err != nil {
		return false, err
	}

	stats := &jsondiff.Stats{}
	opts = append(opts, jsondiff.OptionSetStats(stats))

	logger.Debug("comparing documents",
		slog.String("source", sourcePath),
		slog.String("target", targetPath))

	d := jsondiff.Diff(source, target, opts...)

	logger.Debug("comparison complete",
		slog.Int("differences", stats.Differences()),
		slog.Int("ignored", stats.Ignored))

	if cfg.Pretty {
		if err := jsondiff.FormatPretty(out, d, colorTTY); err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
	} else if d != nil {
		data, err := jsondiff.MarshalIndent(d)
		if err != nil {
			return false, fmt.Errorf("encoding difference: %w", err)
		}
		if _, err := fmt.Fprintf(out, "%s\n", data); err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
	}

	if cfg.Stats {
		summary := jsondiff.FormatPrettyStats(stats)
		if colorTTY {
			summary = jsondiff.FormatPrettyStatsColor(stats)
		}
		if _, err := io.WriteString(out, summary); err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
	}

	return d != nil, nil
}

// diffOptions combines settings from the config file with flags. flags are
// applied last, ignore paths from both are kept
func (cfg *Options) diffOptions(logger *slog.Logger) ([]jsondiff.DiffOption, error) {
	opts := []jsondiff.DiffOption{jsondiff.OptionLogger(logger)}

	if cfg.Config != "" {
		settings, err := config.LoadFile(cfg.Config, cfg.Section)
		if err != nil {
			return nil, fmt.Errorf("loading config %q: %w", cfg.Config, err)
		}
		fileOpts, err := settings.Options()
		if err != nil {
			return nil, fmt.Errorf("loading config %q: %w", cfg.Config, err)
		}
		opts = append(opts, fileOpts...)
		logger.Debug("loaded config",
			slog.String("path", cfg.Config),
			slog.String("section", cfg.Section),
			slog.Int("ignore_paths", len(settings.IgnorePaths)))
	} else if cfg.Section != "" {
		return nil, fmt.Errorf("%w: -section requires -config", cli.ErrUsage)
	}

	for _, p := range cfg.Ignore {
		opts = append(opts, jsondiff.OptionIgnorePath(p))
	}
	for _, p := range cfg.IgnoreMissing {
		opts = append(opts, jsondiff.OptionIgnorePathWithMissing(p, true))
	}
	if cfg.EquateEmpty {
		opts = append(opts, jsondiff.OptionEquateEmptyArrays(true))
	}
	if cfg.Epsilon != nil {
		opts = append(opts, jsondiff.OptionFloatEpsilon(*cfg.Epsilon))
	}
	if cfg.TimeTolerance != nil {
		opts = append(opts, jsondiff.OptionTimeTolerance(*cfg.TimeTolerance))
	}

	return opts, nil
}

// ErrEmptyDocument is returned for an input holding no JSON value
var ErrEmptyDocument = errors.New("empty document")

func readDocument(in io.Reader, path string) (interface{}, error) {
	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	v, err := jsondiff.Decode(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding %s: %w", path, ErrEmptyDocument)
		}
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return v, nil
}
