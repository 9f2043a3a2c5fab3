package jsondiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// operation is the marker printed at the start of each line
type operation string

const (
	// opInsert marks a value only target has
	opInsert = operation("+")
	// opDelete marks a value only source has
	opDelete = operation("-")
	// opChange marks a value both sides have that differs
	opChange = operation("~")
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(d Difference, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, d, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one line per difference, each
// prefixed by the dotted path of its location. if colorTTY is true it will add
// green "+" for values only target has
// red "-" for values only source has
// blue "~" for changes
// and changed strings are shown as an inline character diff
func FormatPretty(w io.Writer, d Difference, colorTTY bool) error {
	p := &prettyPrinter{w: w}
	if colorTTY {
		p.colors = map[operation]*color.Color{
			opInsert: enabled(color.New(color.FgGreen)),
			opDelete: enabled(color.New(color.FgRed)),
			opChange: enabled(color.New(color.FgBlue)),
		}
	}
	p.difference(nil, d)
	return p.err
}

// enabled forces colour output regardless of whether stdout is a terminal,
// callers have already decided they want it
func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

type prettyPrinter struct {
	w      io.Writer
	colors map[operation]*color.Color
	err    error
}

func (p *prettyPrinter) difference(path Path, d Difference) {
	switch x := d.(type) {
	case *ScalarDifference:
		if s, ok := x.Source.(string); ok && p.colors != nil {
			t, _ := x.Target.(string)
			p.line(opChange, path, inlineStringDiff(s, t))
			return
		}
		p.line(opChange, path, fmt.Sprintf("%s -> %s", p.value(x.Source), p.value(x.Target)))
	case *TypeDifference:
		p.line(opChange, path, fmt.Sprintf("%s -> %s", p.typed(x.SourceType, x.SourceValue), p.typed(x.TargetType, x.TargetValue)))
	case *ArrayDifference:
		for _, pair := range x.DifferentPairs {
			p.difference(path.Append(Index(pair.Index)), pair.Diff)
		}
		switch x.Kind {
		case ArrayShorter:
			p.line(opInsert, path, fmt.Sprintf("%s (%s)", p.value(x.MissingElements), plural(len(x.MissingElements), "missing element", "missing elements")))
		case ArrayLonger:
			p.line(opDelete, path, plural(x.ExtraLength, "extra element", "extra elements"))
		}
	case *ObjectDifference:
		for _, e := range x.DifferentEntries {
			child := path.Append(Key(e.Key))
			switch e.Kind {
			case EntryMissing:
				p.line(opInsert, child, p.value(e.Value))
			case EntryExtra:
				p.line(opDelete, child, p.value(e.Value))
			case EntryValue:
				p.difference(child, e.ValueDiff)
			}
		}
	}
}

func (p *prettyPrinter) line(op operation, path Path, text string) {
	if p.err != nil {
		return
	}
	loc := path.String()
	if loc == "" {
		loc = "."
	}
	marker := string(op)
	if c, ok := p.colors[op]; ok {
		marker = c.Sprint(marker)
	}
	_, p.err = fmt.Fprintf(p.w, "%s %s: %s\n", marker, loc, text)
}

func (p *prettyPrinter) value(v interface{}) string {
	if p.err != nil {
		return ""
	}
	buf := &bytes.Buffer{}
	if err := writeValue(buf, v); err != nil {
		p.err = err
		return ""
	}
	return buf.String()
}

// typed prefixes a value with its kind. null needs no prefix
func (p *prettyPrinter) typed(k Kind, v interface{}) string {
	if k == KindNull {
		return "null"
	}
	return fmt.Sprintf("%s %s", k, p.value(v))
}

// inlineStringDiff renders the character edits between two strings with
// ANSI colours
func inlineStringDiff(source, target string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(source, target, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, colorTTY bool) string {
	if ds == nil {
		return "<nil>"
	}

	paint := func(c color.Attribute) func(string) string {
		if !colorTTY {
			return func(s string) string { return s }
		}
		col := enabled(color.New(c))
		return func(s string) string { return col.Sprint(s) }
	}
	neutral := paint(color.FgWhite)
	insert := paint(color.FgGreen)
	del := paint(color.FgRed)
	update := paint(color.FgBlue)

	buf := &bytes.Buffer{}

	elsColor := insert
	change := ds.NodeChange()
	sign := "+"
	if change < 0 {
		elsColor = del
		sign = ""
	} else if change == 0 {
		elsColor = neutral
		sign = ""
	}
	elementsWord := "elements"
	if change == 1 || change == -1 {
		elementsWord = "element"
	}

	buf.WriteString(fmt.Sprintf("%s %s.", elsColor(fmt.Sprintf("%s%d", sign, change)), neutral(elementsWord)))
	buf.WriteString(" " + update(plural(ds.Changes, "change", "changes")+"."))
	if ds.TypeChanges > 0 {
		buf.WriteString(" " + update(plural(ds.TypeChanges, "type change", "type changes")+"."))
	}
	buf.WriteString(" " + del(plural(ds.Extras, "extra", "extras")+"."))
	buf.WriteString(" " + insert(fmt.Sprintf("%d missing.", ds.Missing)))
	if ds.Ignored > 0 {
		buf.WriteString(" " + neutral(fmt.Sprintf("%d ignored.", ds.Ignored)))
	}

	buf.WriteRune('\n')

	return buf.String()
}

// MarshalIndent encodes a difference as indented JSON
func MarshalIndent(d Difference) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
