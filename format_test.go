package jsondiff

import (
	"strings"
	"testing"
)

func TestFormatPretty(t *testing.T) {
	cases := []struct {
		description string
		src, dst    string
		expect      string
	}{
		{
			"equal",
			`{"a":1}`, `{"a":1}`,
			``,
		},
		{
			"object",
			`{"a":1,"arr":[1,2],"gone":true,"sub":{"_":"x"}}`,
			`{"a":"1","arr":[1,3,4],"new":null,"sub":{"_":"y"}}`,
			`~ a: number 1 -> string "1"
~ arr.1: 2 -> 3
+ arr: [4] (1 missing element)
- gone: true
~ sub.\_: "x" -> "y"
+ new: null
`,
		},
		{
			"root array",
			`[1,2,3,4]`, `[1,2]`,
			`- .: 2 extra elements
`,
		},
		{
			"root scalar",
			`true`, `false`,
			`~ .: true -> false
`,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			d := Diff(mustUnmarshal(t, c.src), mustUnmarshal(t, c.dst))
			got, err := FormatPrettyString(d, false)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.expect {
				t.Errorf("want:\n%s\ngot:\n%s", c.expect, got)
			}
		})
	}
}

func TestFormatPrettyColor(t *testing.T) {
	d := Diff(mustUnmarshal(t, `{"name":"apples"}`), mustUnmarshal(t, `{"name":"apricots"}`))

	got, err := FormatPrettyString(d, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes, got: %q", got)
	}
	if !strings.Contains(got, "name: ") {
		t.Errorf("expected path in output, got: %q", got)
	}
	if strings.Contains(got, "->") {
		t.Errorf("string changes should render inline, got: %q", got)
	}
}

func TestFormatStatsPretty(t *testing.T) {
	cases := []struct {
		description string
		input       *Stats
		expect      string
	}{
		{"all plural",
			&Stats{SourceNodes: 2, TargetNodes: 6, Changes: 2, Extras: 2, Missing: 6},
			"+4 elements. 2 changes. 2 extras. 6 missing.\n",
		},
		{"all singular",
			&Stats{SourceNodes: 2, TargetNodes: 1, Changes: 1, TypeChanges: 1, Extras: 1, Missing: 1, Ignored: 3},
			"-1 element. 1 change. 1 type change. 1 extra. 1 missing. 3 ignored.\n",
		},
		{"zero",
			&Stats{},
			"0 elements. 0 changes. 0 extras. 0 missing.\n",
		},
	}

	for i, c := range cases {
		got := FormatPrettyStats(c.input)
		if got != c.expect {
			t.Errorf("%d %s\nwant:\n%s\ngot:\n%s", i, c.description, c.expect, got)
		}
	}
}

func TestFormatStatsNull(t *testing.T) {
	got := FormatPrettyStats(nil)
	expect := `<nil>`
	if got != expect {
		t.Errorf("want:\n%s\ngot:\n%s", expect, got)
	}
}

func TestFormatStatsColor(t *testing.T) {
	got := FormatPrettyStatsColor(&Stats{SourceNodes: 1, TargetNodes: 2, Missing: 1})
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes, got: %q", got)
	}
}
