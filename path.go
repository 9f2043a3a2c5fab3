package jsondiff

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ElementKind distinguishes the flavours of PathElement
type ElementKind uint8

const (
	// KeyElement addresses an object member by name
	KeyElement ElementKind = iota
	// IndexElement addresses a single array position
	IndexElement
	// AllElement addresses every position of an array. it only appears in
	// ignore paths, never in the path of a concrete location
	AllElement
)

// PathElement is one step from a parent value to a child
type PathElement struct {
	Kind  ElementKind
	Key   string
	Index int
}

// Key addresses an object member
func Key(k string) PathElement { return PathElement{Kind: KeyElement, Key: k} }

// Index addresses an array element
func Index(i int) PathElement { return PathElement{Kind: IndexElement, Index: i} }

// All is the array index wildcard
var All = PathElement{Kind: AllElement}

func (e PathElement) String() string {
	switch e.Kind {
	case IndexElement:
		return strconv.Itoa(e.Index)
	case AllElement:
		return "_"
	default:
		if e.Key == "_" {
			return `\_`
		}
		return e.Key
	}
}

// Path is a list of elements leading from the root value to a node
type Path []PathElement

// Append returns a new path with e added to the end. p is never modified
// and the result never shares p's backing array
func (p Path) Append(e PathElement) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = e
	return next
}

// String renders p in the dotted path language
func (p Path) String() string {
	strs := make([]string, len(p))
	for i, e := range p {
		strs[i] = e.String()
	}
	return strings.Join(strs, ".")
}

// SyntaxError is returned by ParsePath when input isn't a complete path
type SyntaxError struct {
	Input     string
	Offset    int    // byte offset where parsing stopped
	Remainder string // unconsumed input
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: unparsed input remaining at offset %d: %q", e.Input, e.Offset, e.Remainder)
}

// ParsePath parses a dot-separated path. Elements are tokens made of letters,
// digits and underscores. A lone "_" token is the array wildcard All, an
// escaped "\_" is the literal key "_", any other token is a key:
//
//	"address.city"    -> Key("address"), Key("city")
//	"object_array._.a" -> Key("object_array"), All, Key("a")
//	`\_.field_1`      -> Key("_"), Key("field_1")
func ParsePath(s string) (Path, error) {
	var path Path

	el, n := parseElement(s)
	if n == 0 {
		return nil, &SyntaxError{Input: s, Offset: 0, Remainder: s}
	}
	path = append(path, el)
	pos := n

	for pos < len(s) && s[pos] == '.' {
		el, n := parseElement(s[pos+1:])
		if n == 0 {
			// the dangling separator stays part of the remainder
			break
		}
		path = append(path, el)
		pos += 1 + n
	}

	if pos != len(s) {
		return nil, &SyntaxError{Input: s, Offset: pos, Remainder: s[pos:]}
	}
	return path, nil
}

// parseElement consumes a single element from the front of s, returning the
// number of bytes consumed. zero means no element could be read
func parseElement(s string) (PathElement, int) {
	if strings.HasPrefix(s, `\_`) {
		return Key("_"), 2
	}

	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isTokenRune(r) {
			break
		}
		n += size
	}
	if n == 0 {
		return PathElement{}, 0
	}

	tok := s[:n]
	if tok == "_" {
		return All, n
	}
	return Key(tok), n
}

// isTokenRune reports whether r may appear in a path token. combining marks
// that are alphabetic count as letters so scripts like Devanagari parse
func isTokenRune(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.Is(unicode.Other_Alphabetic, r)
}

// MatchPath reports whether the concrete path matches pattern. Elements are
// compared position by position: All matches any Index, keys match by name
// and indices by number. MatchPath is a lookup predicate, not an equality
// relation: it isn't transitive and must not back hashing or sorting
func MatchPath(pattern, path Path) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, pe := range pattern {
		if !matchElement(pe, path[i]) {
			return false
		}
	}
	return true
}

func matchElement(pattern, el PathElement) bool {
	switch pattern.Kind {
	case AllElement:
		return el.Kind == IndexElement || el.Kind == AllElement
	case IndexElement:
		return (el.Kind == IndexElement && el.Index == pattern.Index) || el.Kind == AllElement
	default:
		return el.Kind == KeyElement && el.Key == pattern.Key
	}
}
