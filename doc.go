// Package jsondiff is a tolerant structural differ for JSON documents. It's
// intended for tests & tooling that compare an expected document against an
// actual one where some differences don't matter: generated ids, timestamps
// a few milliseconds apart, floats that drifted in the last digit
//
// Instead of operating on JSON text, jsondiff operates on document trees
// consisting of the go types created by decoding JSON. Two complex types:
//   Object (ordered members) or map[string]interface{} (sorted by key)
//   []interface{}
// and the scalar types:
//   string, bool, nil, Number and go's numeric types
//
// Use Unmarshal or Decode to build trees that keep object member order &
// number literals intact, results list object entries in document order.
//
// Comparison is tuned with options:
//   - ignore paths in a dotted path language, "_" matching any array index:
//     "object_array._.id"
//   - a relative epsilon for numbers when either side is a float
//   - a tolerance for strings that are both RFC 3339 timestamps
//   - equating zero-length arrays with null
//
// Diff returns nil when the documents are equal, otherwise a Difference tree
// with one node per location that differs. Differences marshal to JSON with
// a stable, tagged encoding & can be printed for terminals with FormatPretty
package jsondiff
