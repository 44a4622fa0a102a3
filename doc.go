// Package tabular reads delimited text into typed, columnar tables.
//
// The package splits tabular import into four cooperating pieces:
//
//   - Reader: tokenizes raw delimited text into rows of string fields,
//     honoring RFC 4180-style quoting (embedded delimiters, embedded
//     newlines, doubled quote escapes) with a configurable delimiter and
//     quote rune.
//   - Inferencer: examines a bounded sample of each column and picks the
//     most specific type that parses every sampled value.
//   - Column parser: converts every cell to its column's inferred or
//     declared type, turning unparseable cells into typed-missing values
//     instead of aborting.
//   - Problems collector: accumulates every recoverable issue (ragged
//     rows, cell parse failures, inference advisories) in insertion order
//     for inspection after the fact.
//
// # Quick start
//
//	table, problems, err := tabular.ReadTable(src,
//	    tabular.DefaultReadOptions(), tabular.DefaultTypeOptions())
//	if err != nil {
//	    // structurally malformed input (unterminated quote, bad charset)
//	}
//	if problems.Len() > 0 {
//	    // recoverable issues: inspect problems.Records()
//	}
//
// # Error handling
//
// Only structural failures abort a call: an unterminated quoted field or a
// source that cannot be decoded under the declared charset returns a
// [MalformedSourceError]. Everything else degrades gracefully: ragged rows
// are padded (or truncated) and recorded, bad cells become typed-missing
// and are recorded, and an all-missing inference sample falls back to
// character with a low-severity advisory.
//
// # Typed-missing
//
// Typed values are pgtype values (pgtype.Bool, pgtype.Int8, ...) whose
// Valid flag distinguishes a real value from an absent one. A configured
// missing marker (default: the empty string and "NA") is never stored as a
// value; it always becomes the typed-missing representation.
//
// # Concurrency
//
// Parse, Infer and Apply are pure functions over their inputs and touch no
// package-level mutable state; independent parse operations may run
// concurrently on separate tables without coordination.
package tabular
