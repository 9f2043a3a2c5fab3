package jsondiff

import (
	"bytes"
	"strconv"
)

// DifferenceKind names a variant of Difference. values are part of the
// serialized form under the "difference_of" field
type DifferenceKind string

const (
	// DiffScalar is a changed bool, string or number
	DiffScalar = DifferenceKind("scalar")
	// DiffType means source and target hold different kinds of value
	DiffType = DifferenceKind("type")
	// DiffArray is a difference between two arrays
	DiffArray = DifferenceKind("array")
	// DiffObject is a difference between two objects
	DiffObject = DifferenceKind("object")
)

// Difference describes how two values at the same location disagree. It is
// one of *ScalarDifference, *TypeDifference, *ArrayDifference or
// *ObjectDifference. A nil Difference means the values are equal
type Difference interface {
	DifferenceOf() DifferenceKind
}

// ScalarKind identifies the type of a changed scalar
type ScalarKind string

const (
	// ScalarBool is a changed boolean
	ScalarBool = ScalarKind("bool")
	// ScalarString is a changed string
	ScalarString = ScalarKind("string")
	// ScalarNumber is a changed number
	ScalarNumber = ScalarKind("number")
)

// ScalarDifference is a changed value of the same scalar kind on both sides
type ScalarDifference struct {
	Kind   ScalarKind
	Source interface{}
	Target interface{}
}

// DifferenceOf implements Difference
func (*ScalarDifference) DifferenceOf() DifferenceKind { return DiffScalar }

// MarshalJSON implements json.Marshaler
func (d *ScalarDifference) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("difference_of", DiffScalar)
	w.field("source", d.Source)
	w.field("target", d.Target)
	return w.close()
}

// TypeDifference records values of mismatched kinds
type TypeDifference struct {
	SourceType  Kind
	SourceValue interface{}
	TargetType  Kind
	TargetValue interface{}
}

// DifferenceOf implements Difference
func (*TypeDifference) DifferenceOf() DifferenceKind { return DiffType }

// MarshalJSON implements json.Marshaler
func (d *TypeDifference) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("difference_of", DiffType)
	w.field("source_type", d.SourceType)
	w.field("source_value", d.SourceValue)
	w.field("target_type", d.TargetType)
	w.field("target_value", d.TargetValue)
	return w.close()
}

// ArrayDifferenceKind classifies an array difference by the relative length
// of source and target. values are serialized under "array_difference"
type ArrayDifferenceKind string

const (
	// ArrayPairsOnly means both arrays have the same length but some pairs differ
	ArrayPairsOnly = ArrayDifferenceKind("pairs_only")
	// ArrayShorter means source is shorter than target
	ArrayShorter = ArrayDifferenceKind("shorter")
	// ArrayLonger means source is longer than target
	ArrayLonger = ArrayDifferenceKind("longer")
)

// PairDifference is a difference between the elements both arrays hold at Index
type PairDifference struct {
	Index int
	Diff  Difference
}

// ArrayDifference describes differing arrays
type ArrayDifference struct {
	Kind ArrayDifferenceKind
	// DifferentPairs lists differing elements across the overlapping indices
	// in index order. nil if every overlapping pair is equal, which can only
	// happen for ArrayShorter and ArrayLonger
	DifferentPairs []PairDifference
	// MissingElements are the elements of target past the end of source.
	// only set for ArrayShorter
	MissingElements []interface{}
	// ExtraLength is how many more elements source has than target. only set
	// for ArrayLonger
	ExtraLength int
}

// DifferenceOf implements Difference
func (*ArrayDifference) DifferenceOf() DifferenceKind { return DiffArray }

// MarshalJSON implements json.Marshaler
func (d *ArrayDifference) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("difference_of", DiffArray)
	w.field("array_difference", d.Kind)
	w.field("different_pairs", pairsMap(d.DifferentPairs))
	switch d.Kind {
	case ArrayShorter:
		missing := d.MissingElements
		if missing == nil {
			missing = []interface{}{}
		}
		w.field("missing_elements", missing)
	case ArrayLonger:
		w.field("extra_length", d.ExtraLength)
	}
	return w.close()
}

// pairsMap represents index-keyed pairs as an ordered object, or nil
func pairsMap(pairs []PairDifference) interface{} {
	if pairs == nil {
		return nil
	}
	obj := make(Object, len(pairs))
	for i, p := range pairs {
		obj[i] = Member{Key: strconv.Itoa(p.Index), Value: p.Diff}
	}
	return obj
}

// EntryKind classifies a differing object member. values are serialized
// under "entry_difference"
type EntryKind string

const (
	// EntryMissing is a member target has and source lacks
	EntryMissing = EntryKind("missing")
	// EntryExtra is a member source has and target lacks
	EntryExtra = EntryKind("extra")
	// EntryValue is a member both sides have with different values
	EntryValue = EntryKind("value")
)

// EntryDifference is a single differing member of an object
type EntryDifference struct {
	Key  string
	Kind EntryKind
	// Value is the member value of the side that has it. set for EntryMissing
	// and EntryExtra
	Value interface{}
	// ValueDiff is set for EntryValue
	ValueDiff Difference
}

// MarshalJSON implements json.Marshaler. the key is not part of the encoding,
// it's the name the entry is stored under in the parent's different_entries
func (e EntryDifference) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("entry_difference", e.Kind)
	if e.Kind == EntryValue {
		w.field("value_diff", e.ValueDiff)
	} else {
		w.field("value", e.Value)
	}
	return w.close()
}

// ObjectDifference lists differing members. source-driven entries come first
// in source order, followed by members only target has, in target order
type ObjectDifference struct {
	DifferentEntries []EntryDifference
}

// DifferenceOf implements Difference
func (*ObjectDifference) DifferenceOf() DifferenceKind { return DiffObject }

// Entry returns the entry recorded for key
func (d *ObjectDifference) Entry(key string) (EntryDifference, bool) {
	for _, e := range d.DifferentEntries {
		if e.Key == key {
			return e, true
		}
	}
	return EntryDifference{}, false
}

// MarshalJSON implements json.Marshaler
func (d *ObjectDifference) MarshalJSON() ([]byte, error) {
	entries := make(Object, len(d.DifferentEntries))
	for i, e := range d.DifferentEntries {
		entries[i] = Member{Key: e.Key, Value: e}
	}
	w := newFieldWriter()
	w.field("difference_of", DiffObject)
	w.field("different_entries", entries)
	return w.close()
}

// fieldWriter writes a JSON object with fields in call order, holding on to
// the first error
type fieldWriter struct {
	buf *bytes.Buffer
	n   int
	err error
}

func newFieldWriter() *fieldWriter {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	return &fieldWriter{buf: buf}
}

func (w *fieldWriter) field(key string, value interface{}) {
	if w.err != nil {
		return
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	w.n++
	w.err = writeMember(w.buf, key, value)
}

func (w *fieldWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
