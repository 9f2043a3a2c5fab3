package jsondiff

import (
	"errors"
	"log/slog"
	"time"
)

// Diff compares source and target, returning a description of every place
// they differ or nil if they're equal under the configured tolerances.
// Diff never fails: every pairing of value kinds has a defined outcome
func Diff(source, target interface{}, opts ...DiffOption) Difference {
	cfg := &Config{Source: source, Target: target}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Compare()
}

// Config is the complete set of parameters for one comparison. The zero
// value compares exactly: no ignored paths, no tolerances. A Config isn't
// modified by Compare, so it can be shared by concurrent comparisons as long
// as each has its own Stats
type Config struct {
	// IgnoreRules are consulted in order, the first rule matching a
	// location decides whether it's ignored
	IgnoreRules []IgnoreRule
	// If true, a zero-length array and null are equal
	EquateEmptyArrays bool
	// FloatEpsilon is the relative tolerance for comparing numbers when
	// either side is a float. zero means exact
	FloatEpsilon float64
	// TimeTolerance is the largest difference between two RFC 3339
	// timestamp strings that still counts as equal. zero disables timestamp
	// parsing altogether
	TimeTolerance time.Duration

	Source interface{}
	Target interface{}

	// Provide a non-nil stats pointer & Compare will populate it with data
	// from the comparison
	Stats *Stats
	// Logger receives debug records about ignored paths. nil discards
	Logger *slog.Logger

	// ignore paths that failed to parse, logged by Compare so the order of
	// options doesn't matter
	dropped []*SyntaxError
}

// DiffOption is a function that adjusts a config, zero or more DiffOptions
// can be passed to the Diff function
type DiffOption func(cfg *Config)

// OptionIgnorePath ignores any difference at path. A path present in source
// but absent in target is still reported
func OptionIgnorePath(path string) DiffOption {
	return OptionIgnorePathWithMissing(path, false)
}

// OptionIgnorePathWithMissing ignores any difference at path. If
// ignoreMissing is true a path present in source but absent in target is
// ignored too
func OptionIgnorePathWithMissing(path string, ignoreMissing bool) DiffOption {
	return func(cfg *Config) {
		cfg.IgnorePath(path, ignoreMissing)
	}
}

// OptionEquateEmptyArrays treats zero-length arrays and null as equal
func OptionEquateEmptyArrays(equate bool) DiffOption {
	return func(cfg *Config) {
		cfg.EquateEmptyArrays = equate
	}
}

// OptionFloatEpsilon sets the relative tolerance for float comparison
func OptionFloatEpsilon(epsilon float64) DiffOption {
	return func(cfg *Config) {
		cfg.FloatEpsilon = epsilon
	}
}

// OptionTimeTolerance sets the tolerance for timestamp string comparison
func OptionTimeTolerance(d time.Duration) DiffOption {
	return func(cfg *Config) {
		cfg.TimeTolerance = d
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// OptionLogger sets the logger debug output is written to
func OptionLogger(logger *slog.Logger) DiffOption {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// IgnorePath parses path and adds it as an ignore rule. A path that doesn't
// parse is dropped without an error, use ParsePath to validate paths up front.
// Dropped paths are reported to Logger when Compare runs
func (c *Config) IgnorePath(path string, ignoreMissing bool) *Config {
	p, err := ParsePath(path)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			c.dropped = append(c.dropped, se)
		}
		return c
	}
	c.IgnoreRules = append(c.IgnoreRules, IgnoreRule{Path: p, IgnoreMissing: ignoreMissing})
	return c
}

// Compare runs the comparison of Source and Target
func (c *Config) Compare() Difference {
	if c.Stats != nil {
		*c.Stats = Stats{
			SourceNodes: countNodes(c.Source),
			TargetNodes: countNodes(c.Target),
		}
	}

	log := c.logger()
	for _, se := range c.dropped {
		log.Debug("dropping invalid ignore path",
			slog.String("path", se.Input),
			slog.String("error", se.Error()))
	}

	cmp := &comparator{cfg: c, stats: c.Stats, log: log}
	return cmp.values(c.Source, c.Target, nil)
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
