package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/qri-io/jsondiff"
)

var (
	// ErrEmptyData is returned when the input data is empty.
	ErrEmptyData = errors.New("empty data")
	// ErrPathNotFound is returned when the requested section is not in the document.
	ErrPathNotFound = errors.New("path not found")
	// ErrPathIsDirectory is returned when LoadFile is given a directory.
	ErrPathIsDirectory = errors.New("path is a directory, not a file")
	// ErrNegativeEpsilon is returned for an epsilon below zero.
	ErrNegativeEpsilon = errors.New("approx_float_eq_epsilon must not be negative")
	// ErrInvalidDuration is returned when the timestamp tolerance isn't a duration.
	ErrInvalidDuration = errors.New("approx_date_time_eq_duration is not a duration")
	// ErrNegativeTolerance is returned for a timestamp tolerance below zero.
	ErrNegativeTolerance = errors.New("approx_date_time_eq_duration must not be negative")
	// ErrInvalidIgnorePath is returned for an ignore path that doesn't parse.
	ErrInvalidIgnorePath = errors.New("invalid ignore path")
)

// IgnorePath is a single entry of the ignore_paths list
type IgnorePath struct {
	Path          string `yaml:"path" json:"path"`
	IgnoreMissing bool   `yaml:"ignore_missing" json:"ignore_missing"`
}

// Settings is the on-disk form of a jsondiff.Config
type Settings struct {
	IgnorePaths       []IgnorePath `yaml:"ignore_paths" json:"ignore_paths"`
	EquateEmptyArrays bool         `yaml:"equate_empty_arrays" json:"equate_empty_arrays"`
	FloatEpsilon      float64      `yaml:"approx_float_eq_epsilon" json:"approx_float_eq_epsilon"`
	// TimeTolerance is a go duration string, eg. "1s" or "250ms"
	TimeTolerance string `yaml:"approx_date_time_eq_duration" json:"approx_date_time_eq_duration"`
}

// SetDefaults fills unset fields, reporting whether anything changed.
func (s *Settings) SetDefaults() (changed bool) {
	if strings.TrimSpace(s.TimeTolerance) == "" {
		s.TimeTolerance = "0s"
		changed = true
	}

	return changed
}

// Validate checks every field, returning the first problem found.
func (s *Settings) Validate() error {
	if !(s.FloatEpsilon >= 0) {
		return fmt.Errorf("%w: %v", ErrNegativeEpsilon, s.FloatEpsilon)
	}

	if _, err := s.tolerance(); err != nil {
		return err
	}

	for i, ip := range s.IgnorePaths {
		if _, err := jsondiff.ParsePath(ip.Path); err != nil {
			return fmt.Errorf("ignore_paths[%d]: %w: %w", i, ErrInvalidIgnorePath, err)
		}
	}

	return nil
}

func (s *Settings) tolerance() (time.Duration, error) {
	if strings.TrimSpace(s.TimeTolerance) == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s.TimeTolerance)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s.TimeTolerance)
	}

	if d < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeTolerance, d)
	}

	return d, nil
}

// Options converts settings to options for jsondiff.Diff. Settings are
// validated first.
func (s *Settings) Options() ([]jsondiff.DiffOption, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	tol, err := s.tolerance()
	if err != nil {
		return nil, err
	}

	opts := make([]jsondiff.DiffOption, 0, len(s.IgnorePaths)+3)
	for _, ip := range s.IgnorePaths {
		opts = append(opts, jsondiff.OptionIgnorePathWithMissing(ip.Path, ip.IgnoreMissing))
	}

	opts = append(opts,
		jsondiff.OptionEquateEmptyArrays(s.EquateEmptyArrays),
		jsondiff.OptionFloatEpsilon(s.FloatEpsilon),
		jsondiff.OptionTimeTolerance(tol),
	)

	return opts, nil
}

// Load parses settings from data. An empty section parses the entire
// document, otherwise section is a colon-separated path to the settings.
// Defaults are applied and the result validated.
func Load(data []byte, section string) (*Settings, error) {
	s := &Settings{}
	if err := parse(data, s, section); err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	s.SetDefaults()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating error: %w", err)
	}

	return s, nil
}

// LoadFile reads settings from the file at fpath. See Load.
func LoadFile(fpath, section string) (*Settings, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return Load(data, section)
}

func parse(data []byte, target any, section string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if section == "" {
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(section))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", section, err)
	}

	if err := pathObj.Read(bytes.NewReader(data), target); err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, section)
		}

		return fmt.Errorf("reading path %q: %w", section, err)
	}

	return nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
//   - "key" -> "$.key"
//   - "tests:api" -> "$.tests.api"
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}
