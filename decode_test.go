package jsondiff

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnmarshal(t *testing.T) {
	cases := []struct {
		description string
		input       string
		expect      interface{}
	}{
		{"null", `null`, nil},
		{"bool", `true`, true},
		{"string", `"hello"`, "hello"},
		{"integer literal is kept", `18446744073709551615`, Number("18446744073709551615")},
		{"float literal is kept", `1.50`, Number("1.50")},
		{"empty array", `[]`, []interface{}{}},
		{"empty object", `{}`, Object{}},
		{"object member order", `{"z": 1, "a": [true, null], "m": {}}`, Object{
			{Key: "z", Value: Number("1")},
			{Key: "a", Value: []interface{}{true, nil}},
			{Key: "m", Value: Object{}},
		}},
		{"repeated key keeps first position, last value", `{"a": 1, "b": 2, "a": 3}`, Object{
			{Key: "a", Value: Number("3")},
			{Key: "b", Value: Number("2")},
		}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			got, err := Unmarshal([]byte(c.input))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		description string
		input       string
	}{
		{"empty", ``},
		{"unterminated object", `{"a": 1`},
		{"missing value", `{"a": }`},
		{"unterminated array", `[1, 2`},
		{"trailing data", `{} []`},
		{"colon in array", `[1:2]`},
		{"missing comma in array", `[1 2]`},
		{"missing colon", `{"a" 1}`},
		{"comma instead of colon", `{"a",1}`},
		{"trailing comma", `[1,]`},
		{"leading comma", `[,1]`},
		{"trailing comma in object", `{"a":1,}`},
		{"number out of range", `{"n": 1e400}`},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if _, err := Unmarshal([]byte(c.input)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Decode(strings.NewReader(`1 2`)); !errors.Is(err, ErrTrailingData) {
		t.Errorf("expected ErrTrailingData, got: %v", err)
	}
	if _, err := Decode(strings.NewReader(`[1:2]`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got: %v", err)
	}
	if _, err := Decode(strings.NewReader(`[-1e400]`)); !errors.Is(err, ErrNumberOutOfRange) {
		t.Errorf("expected ErrNumberOutOfRange, got: %v", err)
	}
}

func TestOutOfRangeNumbers(t *testing.T) {
	// values built without Unmarshal can still hold literals beyond float64
	big := Number("1e400")

	if d := Diff(big, big); d != nil {
		t.Errorf("expected equal, got: %#v", d)
	}

	stats := &Stats{}
	d := Diff(Object{{Key: "n", Value: big}}, Object{{Key: "n", Value: Number("1")}}, OptionSetStats(stats))
	expect := &ObjectDifference{DifferentEntries: []EntryDifference{
		{Key: "n", Kind: EntryValue, ValueDiff: &ScalarDifference{Kind: ScalarNumber, Source: big, Target: Number("1")}},
	}}
	if diff := cmp.Diff(expect, d); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if stats.SourceNodes != 2 || stats.Changes != 1 {
		t.Errorf("unexpected stats: %#v", stats)
	}
}

func TestObjectAccessors(t *testing.T) {
	obj := Object{{Key: "b", Value: 1}, {Key: "a", Value: 2}}

	if diff := cmp.Diff([]string{"b", "a"}, obj.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, ok := obj.Get("a"); !ok || v != 2 {
		t.Errorf("expected a=2, got: %v %t", v, ok)
	}
	if _, ok := obj.Get("c"); ok {
		t.Error("expected c to be missing")
	}

	data, err := obj.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"b":1,"a":2}` {
		t.Errorf("encoding should keep member order, got: %s", data)
	}
}

func TestCountNodes(t *testing.T) {
	v, err := Unmarshal([]byte(`{"a": [1, 2, {"b": null}], "c": "d"}`))
	if err != nil {
		t.Fatal(err)
	}
	// object, a, 1, 2, {b}, null, c
	if got := countNodes(v); got != 7 {
		t.Errorf("want: 7 got: %d", got)
	}
}

func TestKindOfPanicsOnForeignTypes(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	kindOf(struct{}{})
}
