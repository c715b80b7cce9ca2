// Package utils provides helpers for working with loosely-typed documents:
// decoded JSON and YAML values whose concrete types depend on the decoder
// (float64 from JSON, uint64 from YAML, map[any]any from some YAML paths).
package utils
