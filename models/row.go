package models

// RawRow is one spreadsheet row as exported: column header -> cell value.
// Header aliasing and type coercion happen in the normalizer, not here.
type RawRow map[string]string

// SkipReason explains why the normalizer excluded a row from the catalog
type SkipReason string

const (
	SkipMissingID SkipReason = "missing or invalid id"
	SkipNoStock   SkipReason = "no size with stock > 0"
)
