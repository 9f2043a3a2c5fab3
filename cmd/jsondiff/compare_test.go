package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qri-io/jsondiff"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestCompare_Equal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{"a": 1, "b": [1, 2]}`)
	dst := writeFile(t, dir, "b.json", `{"b": [1, 2], "a": 1}`)

	var out, errOut bytes.Buffer
	differs, err := (&Options{}).compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.False(t, differs)
	assert.Empty(t, out.String())
}

func TestCompare_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{"a": 1}`)
	dst := writeFile(t, dir, "b.json", `{"a": 2}`)

	var out, errOut bytes.Buffer
	differs, err := (&Options{}).compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.True(t, differs)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "object", got["difference_of"])

	entries, ok := got["different_entries"].(map[string]any)
	require.True(t, ok)
	entry, ok := entries["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "value", entry["entry_difference"])
}

func TestCompare_Pretty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{"name": "apples", "count": 1, "gone": true}`)
	dst := writeFile(t, dir, "b.json", `{"name": "pears", "count": 1, "new": null}`)

	var out, errOut bytes.Buffer
	differs, err := (&Options{Pretty: true, Stats: true}).compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.True(t, differs)
	assert.Equal(t, strings.Join([]string{
		`~ name: "apples" -> "pears"`,
		`- gone: true`,
		`+ new: null`,
		`0 elements. 1 change. 1 extra. 1 missing.`,
		``,
	}, "\n"), out.String())
}

func TestCompare_Flags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{
		"id": "abc",
		"score": 1.0,
		"created": "2024-01-01T00:00:00Z",
		"tags": [],
		"items": [{"id": 1, "v": "x"}, {"id": 2, "v": "y"}],
		"local": true
	}`)
	dst := writeFile(t, dir, "b.json", `{
		"id": "def",
		"score": 1.005,
		"created": "2024-01-01T00:00:00.5Z",
		"tags": null,
		"items": [{"id": 10, "v": "x"}, {"id": 20, "v": "y"}]
	}`)

	eps := 0.01
	tol := time.Second
	cfg := &Options{
		Ignore:        []string{"id", "items._.id"},
		IgnoreMissing: []string{"local"},
		EquateEmpty:   true,
		Epsilon:       &eps,
		TimeTolerance: &tol,
	}

	var out, errOut bytes.Buffer
	differs, err := cfg.compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.False(t, differs, out.String())
}

func TestCompare_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{"id": 1, "list": []}`)
	dst := writeFile(t, dir, "b.json", `{"id": 2, "list": null}`)
	cfgPath := writeFile(t, dir, "settings.yaml", `
jsondiff:
  ignore_paths:
    - path: id
  equate_empty_arrays: true
`)

	var out, errOut bytes.Buffer
	differs, err := (&Options{Config: cfgPath, Section: "jsondiff"}).compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.False(t, differs)
}

func TestCompare_Stdin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := writeFile(t, dir, "b.json", `[1, 2, 3]`)

	var out, errOut bytes.Buffer
	differs, err := (&Options{Pretty: true}).compare(strings.NewReader(`[1, 2]`), &out, &errOut, "-", dst, false)

	require.NoError(t, err)
	assert.True(t, differs)
	assert.Equal(t, "+ .: [3] (1 missing element)\n", out.String())
}

func TestCompare_DebugLogging(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.json", `{"id": 1}`)
	dst := writeFile(t, dir, "b.json", `{"id": 2}`)

	var out, errOut bytes.Buffer
	cfg := &Options{Ignore: []string{"id"}, LogLevel: "debug", LogFormat: "json"}
	differs, err := cfg.compare(nil, &out, &errOut, src, dst, false)

	require.NoError(t, err)
	assert.False(t, differs)
	assert.Contains(t, errOut.String(), `"msg":"ignoring path"`)
	assert.Contains(t, errOut.String(), `"path":"id"`)
}

func TestCompare_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{}`)
	bad := writeFile(t, dir, "bad.json", `{"a": }`)
	empty := writeFile(t, dir, "empty.json", ``)
	trailing := writeFile(t, dir, "trailing.json", `{} {}`)
	malformed := writeFile(t, dir, "malformed.json", `[1 2]`)
	huge := writeFile(t, dir, "huge.json", `{"n": 1e400}`)

	testCases := []struct {
		name    string
		cfg     *Options
		source  string
		target  string
		wantErr error
	}{
		{name: "both stdin", cfg: &Options{}, source: "-", target: "-", wantErr: cli.ErrUsage},
		{name: "missing file", cfg: &Options{}, source: filepath.Join(dir, "nope.json"), target: good, wantErr: os.ErrNotExist},
		{name: "invalid json", cfg: &Options{}, source: bad, target: good},
		{name: "empty document", cfg: &Options{}, source: good, target: empty, wantErr: ErrEmptyDocument},
		{name: "trailing data", cfg: &Options{}, source: trailing, target: good},
		{name: "malformed separators", cfg: &Options{}, source: malformed, target: malformed, wantErr: jsondiff.ErrInvalidJSON},
		{name: "number out of range", cfg: &Options{Stats: true}, source: huge, target: good, wantErr: jsondiff.ErrNumberOutOfRange},
		{name: "section without config", cfg: &Options{Section: "a"}, source: good, target: good, wantErr: cli.ErrUsage},
		{name: "config is a directory", cfg: &Options{Config: dir}, source: good, target: good},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			_, err := tc.cfg.compare(strings.NewReader(""), &out, &errOut, tc.source, tc.target, false)

			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestFlagFuncs(t *testing.T) {
	t.Parallel()

	cfg := &Options{}

	_, err := cfg.pathOpt(&cfg.Ignore)(nil, "items._.id")
	require.NoError(t, err)
	_, err = cfg.pathOpt(&cfg.Ignore)(nil, "items..id")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, []string{"items._.id"}, cfg.Ignore)

	_, err = cfg.epsilonOpt()(nil, "0.5")
	require.NoError(t, err)
	require.NotNil(t, cfg.Epsilon)
	assert.InDelta(t, 0.5, *cfg.Epsilon, 1e-12)
	_, err = cfg.epsilonOpt()(nil, "-1")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = cfg.toleranceOpt()(nil, "250ms")
	require.NoError(t, err)
	require.NotNil(t, cfg.TimeTolerance)
	assert.Equal(t, 250*time.Millisecond, *cfg.TimeTolerance)
	_, err = cfg.toleranceOpt()(nil, "soon")
	require.ErrorIs(t, err, cli.ErrUsage)
}
