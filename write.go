package tabular

// write.go renders a typed table back to delimited text in canonical
// form. Canonical values re-parse under the same column types, so a
// write/re-parse round trip preserves shape and values for any table
// whose source had no malformed quoting.

import (
	"io"
	"strings"
)

// WriteOptions configures the Writer. The zero value writes
// comma-delimited, double-quoted text with a header row and empty-string
// missing cells; DefaultWriteOptions writes "NA" instead.
type WriteOptions struct {
	// Delimiter is the field separator (default ',').
	Delimiter rune

	// Quote is the quoting rune (default '"').
	Quote rune

	// Missing is written for typed-missing cells.
	Missing string

	// OmitHeader suppresses the column-name row.
	OmitHeader bool
}

// DefaultWriteOptions writes comma-delimited text with "NA" for missing
// cells, matching the default read-side missing markers.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Delimiter: ',', Quote: '"', Missing: "NA"}
}

// Write renders the table to w.
func Write(t *TypedTable, w io.Writer, opts WriteOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	var b strings.Builder

	if !opts.OmitHeader {
		for i, c := range t.Columns {
			if i > 0 {
				b.WriteRune(opts.Delimiter)
			}
			writeField(&b, c.Spec().Name, opts)
		}
		b.WriteByte('\n')
		if err := flush(w, &b); err != nil {
			return err
		}
	}

	for r := 0; r < t.NumRows(); r++ {
		for i, c := range t.Columns {
			if i > 0 {
				b.WriteRune(opts.Delimiter)
			}
			if c.IsMissing(r) {
				writeField(&b, opts.Missing, opts)
			} else {
				writeField(&b, c.Format(r), opts)
			}
		}
		b.WriteByte('\n')
		if err := flush(w, &b); err != nil {
			return err
		}
	}
	return nil
}

// WriteString renders the table to a string.
func WriteString(t *TypedTable, opts WriteOptions) string {
	var sb strings.Builder
	_ = Write(t, &sb, opts) // strings.Builder cannot fail
	return sb.String()
}

// writeField quotes the value when it contains the delimiter, the quote
// rune, or a line break, doubling embedded quotes.
func writeField(b *strings.Builder, v string, opts WriteOptions) {
	if !strings.ContainsAny(v, string([]rune{opts.Delimiter, opts.Quote, '\n', '\r'})) {
		b.WriteString(v)
		return
	}
	b.WriteRune(opts.Quote)
	for _, r := range v {
		if r == opts.Quote {
			b.WriteRune(opts.Quote)
		}
		b.WriteRune(r)
	}
	b.WriteRune(opts.Quote)
}

// flush moves the builder's contents to w one row at a time so large
// tables stream instead of accumulating.
func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	b.Reset()
	return err
}
