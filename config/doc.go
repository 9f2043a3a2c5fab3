// Package config loads comparison settings for jsondiff from YAML or JSON
// documents.
//
// A settings document looks like:
//
//	ignore_paths:
//	  - path: address.city
//	  - path: target_missing_value
//	    ignore_missing: true
//	equate_empty_arrays: true
//	approx_float_eq_epsilon: 0.001
//	approx_date_time_eq_duration: 1s
//
// # Sections
//
// Settings can live inside a larger document. The section parameter selects
// it using colon (:) as the separator for nested keys:
//
//	"tests:api"  -> doc["tests"]["api"]
//	""           -> entire document
//
// Section navigation uses goccy/go-yaml PathString, so the parser only
// decodes the part of the document that holds the settings.
package config
