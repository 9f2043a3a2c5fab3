package jsondiff

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind defines the six atoms of the JSON universe
type Kind uint8

const (
	// KindNull is the JSON null literal
	KindNull Kind = iota
	// KindBool is true or false
	KindBool
	// KindNumber is any integer or floating point number
	KindNumber
	// KindString is a string of unicode characters
	KindString
	// KindArray is an ordered list of values
	KindArray
	// KindObject is a set of uniquely-keyed members
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// MarshalText encodes a kind as its lowercase name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Member is a single key/value pair of an Object
type Member struct {
	Key   string
	Value interface{}
}

// Object is a JSON object that keeps its members in the order they were
// supplied. Keys are expected to be unique
type Object []Member

// Get returns the value stored at key
func (o Object) Get(key string) (interface{}, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys lists member keys in order
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// MarshalJSON writes members in order
func (o Object) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(buf, m.Key, m.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// objectFromMap orders the members of a go map by key. maps carry no order of
// their own, sorting keeps results deterministic
func objectFromMap(m map[string]interface{}) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := make(Object, len(keys))
	for i, k := range keys {
		obj[i] = Member{Key: k, Value: m[k]}
	}
	return obj
}

// Number is a JSON number literal kept in its textual form so integers never
// round-trip through float64
type Number string

// String returns the literal
func (n Number) String() string { return string(n) }

// MarshalJSON writes the literal as-is
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// numberLiteral is satisfied by json.Number from both encoding/json and
// goccy/go-json
type numberLiteral interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

type numberClass uint8

const (
	numUint numberClass = iota
	numInt
	numFloat
)

// number is a classified numeric value. non-negative integers are held as
// unsigned, negative integers as signed, everything else as a float
type number struct {
	class numberClass
	u     uint64
	i     int64
	f     float64
}

func (n number) float() float64 {
	switch n.class {
	case numUint:
		return float64(n.u)
	case numInt:
		return float64(n.i)
	default:
		return n.f
	}
}

func fromInt(i int64) number {
	if i >= 0 {
		return number{class: numUint, u: uint64(i)}
	}
	return number{class: numInt, i: i}
}

func parseNumber(s string) (number, bool) {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return number{class: numUint, u: u}, true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return number{class: numInt, i: i}, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		// out of range literals saturate to ±Inf
		return number{class: numFloat, f: f}, true
	}
	return number{}, false
}

// toNumber classifies v, reporting false if v isn't numeric
func toNumber(v interface{}) (number, bool) {
	switch x := v.(type) {
	case Number:
		return parseNumber(string(x))
	case int:
		return fromInt(int64(x)), true
	case int8:
		return fromInt(int64(x)), true
	case int16:
		return fromInt(int64(x)), true
	case int32:
		return fromInt(int64(x)), true
	case int64:
		return fromInt(x), true
	case uint:
		return number{class: numUint, u: uint64(x)}, true
	case uint8:
		return number{class: numUint, u: uint64(x)}, true
	case uint16:
		return number{class: numUint, u: uint64(x)}, true
	case uint32:
		return number{class: numUint, u: uint64(x)}, true
	case uint64:
		return number{class: numUint, u: x}, true
	case float32:
		return number{class: numFloat, f: float64(x)}, true
	case float64:
		return number{class: numFloat, f: x}, true
	case numberLiteral:
		return parseNumber(x.String())
	}
	return number{}, false
}

// kindOf reports the JSON kind of a go value. values outside the JSON data
// model are a programming error
func kindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case Object, map[string]interface{}:
		return KindObject
	}
	if _, ok := toNumber(v); ok {
		return KindNumber
	}
	panic(fmt.Sprintf("unexpected type: %T", v))
}

// asObject normalizes both object representations to an ordered Object
func asObject(v interface{}) Object {
	switch x := v.(type) {
	case Object:
		return x
	case map[string]interface{}:
		return objectFromMap(x)
	}
	return nil
}

// countNodes returns the number of values in a tree, counting v itself
func countNodes(v interface{}) int {
	switch kindOf(v) {
	case KindArray:
		n := 1
		for _, ch := range v.([]interface{}) {
			n += countNodes(ch)
		}
		return n
	case KindObject:
		n := 1
		for _, m := range asObject(v) {
			n += countNodes(m.Value)
		}
		return n
	default:
		return 1
	}
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return writeValue(buf, value)
}

func writeValue(buf *bytes.Buffer, v interface{}) error {
	if m, ok := v.(map[string]interface{}); ok {
		v = objectFromMap(m)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
