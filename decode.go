package jsondiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

var (
	// ErrTrailingData is returned when a document holds more than one value
	ErrTrailingData = errors.New("unexpected data after top-level value")
	// ErrInvalidJSON is returned for a document that isn't well-formed JSON
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrNumberOutOfRange is returned for a number literal too large for a float64
	ErrNumberOutOfRange = errors.New("number out of range")
)

// Unmarshal decodes a single JSON document into a value tree that keeps
// object member order and number literals intact
func Unmarshal(data []byte) (interface{}, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r. Objects decode to Object,
// arrays to []interface{}, numbers to Number
func Decode(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}

	// the token stream skips separators without checking them
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok interface{}) (interface{}, error) {
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(x))
	case json.Number:
		if _, err := strconv.ParseFloat(x.String(), 64); errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s", ErrNumberOutOfRange, x.String())
		}
		return Number(x.String()), nil
	case float64:
		// only reached when a decoder isn't using numbers
		return x, nil
	case string, bool, nil:
		return x, nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

func decodeArray(dec *json.Decoder) (interface{}, error) {
	arr := []interface{}{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func decodeObject(dec *json.Decoder) (interface{}, error) {
	obj := Object{}
	index := map[string]int{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %T", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}

		// a repeated key keeps its first position and takes the last value
		if i, seen := index[key]; seen {
			obj[i].Value = v
			continue
		}
		index[key] = len(obj)
		obj = append(obj, Member{Key: key, Value: v})
	}
}
