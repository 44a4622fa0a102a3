package tabular

// reader.go splits raw delimited text into rows of string fields. The
// tokenizer is a hand-rolled state machine rather than encoding/csv
// because the quote rune is configurable and ragged rows must be repaired
// and recorded instead of rejected. Quoted fields may contain the
// delimiter and literal newlines; a doubled quote inside a quoted field
// is an escaped literal quote. Fully blank lines are dropped.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ReadOptions configures the Reader. The zero value reads comma-delimited,
// double-quoted text with a header row; DefaultReadOptions spells the
// defaults out.
type ReadOptions struct {
	// Delimiter is the field separator (default ',').
	Delimiter rune

	// Quote is the quoting rune (default '"').
	Quote rune

	// Skip drops this many leading physical lines before any parsing.
	Skip int

	// Comment, when non-empty, drops any line starting with this prefix
	// (after Skip). The prefix is not recognized inside quoted fields.
	Comment string

	// NoHeader treats the first row as data. Column names come from
	// ColumnNames when supplied, otherwise X1..Xn are synthesized.
	NoHeader bool

	// ColumnNames supplies names explicitly; when set, every row is data
	// regardless of NoHeader.
	ColumnNames []string

	// Ragged selects the repair policy for rows whose width differs from
	// the header (default RaggedPad).
	Ragged RaggedPolicy

	// Encoding names the source charset (default "utf-8"). See Locale.
	Encoding string
}

// DefaultReadOptions returns the standard comma/double-quote options with
// a header row.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Delimiter: ',', Quote: '"'}
}

// MalformedSourceError reports a structurally fatal input: an unterminated
// quoted field or a source that cannot be decoded under its declared
// charset. No partial RawTable accompanies it.
type MalformedSourceError struct {
	Line   int // 1-based physical line where the problem starts, 0 if n/a
	Reason string
}

func (e *MalformedSourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed source at line %d: %s", e.Line, e.Reason)
	}
	return "malformed source: " + e.Reason
}

// Parse reads an in-memory string of delimited text into a RawTable.
func Parse(src string, opts ReadOptions) (*RawTable, error) {
	return ParseReader(strings.NewReader(src), opts)
}

// ParseReader reads delimited text from r into a RawTable in a single
// streaming pass. Ragged rows are repaired per opts.Ragged and recorded
// on the table; only malformed quoting or an undecodable charset fails.
func ParseReader(r io.Reader, opts ReadOptions) (*RawTable, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	wrapped, err := wrapSource(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	tok := &tokenizer{
		r:     bufio.NewReader(wrapped),
		delim: opts.Delimiter,
		quote: opts.Quote,
		line:  1,
	}

	for i := 0; i < opts.Skip; i++ {
		if !tok.skipLine() {
			break
		}
	}

	rows, err := readRows(tok, opts.Comment)
	if err != nil {
		return nil, err
	}

	names, data := splitHeader(rows, opts)
	data, problems := repairRagged(data, len(names), opts.Ragged)

	return &RawTable{Names: names, Rows: data, problems: problems}, nil
}

// readRows tokenizes every remaining record, dropping comment lines and
// fully blank lines.
func readRows(tok *tokenizer, comment string) ([][]string, error) {
	var rows [][]string
	prefix := []byte(comment)

	for {
		if len(prefix) > 0 {
			if head, _ := tok.r.Peek(len(prefix)); bytes.Equal(head, prefix) {
				if !tok.skipLine() {
					break
				}
				continue
			}
		}

		rec, sawQuote, err := tok.readRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// A blank line is not a one-column row of empty string.
		if len(rec) == 1 && rec[0] == "" && !sawQuote {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// splitHeader resolves column names per the options and returns the data
// rows. Explicit names win over a header row; otherwise the first row
// supplies names unless NoHeader, in which case X1..Xn are synthesized.
func splitHeader(rows [][]string, opts ReadOptions) ([]string, [][]string) {
	switch {
	case len(opts.ColumnNames) > 0:
		return repairNames(opts.ColumnNames), rows
	case !opts.NoHeader:
		if len(rows) == 0 {
			return nil, nil
		}
		return repairNames(rows[0]), rows[1:]
	default:
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		names := make([]string, width)
		for i := range names {
			names[i] = fmt.Sprintf("X%d", i+1)
		}
		return names, rows
	}
}

// repairNames trims names, synthesizes Xn for blanks, and disambiguates
// duplicates by suffixing _1, _2, ...
func repairNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	counts := make(map[string]int, len(raw))

	for i, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			n = fmt.Sprintf("X%d", i+1)
		}
		if seen[n] {
			base := n
			for {
				counts[base]++
				cand := fmt.Sprintf("%s_%d", base, counts[base])
				if !seen[cand] {
					n = cand
					break
				}
			}
		}
		seen[n] = true
		names[i] = n
	}
	return names
}

// repairRagged normalizes every row to the header width. Under RaggedPad
// short rows are padded with empty fields (typed-missing under the
// default markers) and long rows truncated; under RaggedTruncate long
// rows are truncated and short rows dropped. Every repair is recorded.
// Problem rows carry the repaired table's row index, so they line up with
// cell-level problems recorded later; a dropped row has no index in the
// repaired table and is recorded with Row -1.
func repairRagged(data [][]string, width int, policy RaggedPolicy) ([][]string, []Problem) {
	var problems []Problem
	out := data[:0]

	for _, row := range data {
		if len(row) == width {
			out = append(out, row)
			continue
		}

		idx := len(out)
		switch {
		case len(row) > width:
			out = append(out, row[:width])
		case policy == RaggedTruncate:
			// Short rows cannot be truncated into shape; drop them.
			idx = -1
		default:
			padded := make([]string, width)
			copy(padded, row)
			out = append(out, padded)
		}

		problems = append(problems, Problem{
			Row:      idx,
			Raw:      fmt.Sprintf("%d fields", len(row)),
			Expected: fmt.Sprintf("%d fields", width),
			Reason:   "row width differs from header",
			Kind:     ProblemRaggedRow,
			Severity: SeverityWarning,
		})
	}
	return out, problems
}

// tokenizer is the streaming record scanner. It tracks physical lines so
// malformed-quoting errors can point at the offending line.
type tokenizer struct {
	r     *bufio.Reader
	delim rune
	quote rune
	line  int
}

// skipLine consumes through the next newline. Returns false at EOF.
func (t *tokenizer) skipLine() bool {
	_, err := t.r.ReadString('\n')
	t.line++
	return err == nil
}

// readRecord scans one record, honoring quoting. It returns io.EOF once
// the input is exhausted, and reports whether any field was quoted so
// callers can tell a blank line from a quoted empty field.
func (t *tokenizer) readRecord() ([]string, bool, error) {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
		sawQuote bool
		started  bool
	)
	startLine := t.line

	for {
		r, _, err := t.r.ReadRune()
		if err == io.EOF {
			if inQuotes {
				return nil, sawQuote, &MalformedSourceError{
					Line:   startLine,
					Reason: "unterminated quoted field",
				}
			}
			if !started {
				return nil, false, io.EOF
			}
			fields = append(fields, field.String())
			return fields, sawQuote, nil
		}
		if err != nil {
			return nil, sawQuote, err
		}
		started = true

		if inQuotes {
			if r == t.quote {
				next, _, nerr := t.r.ReadRune()
				if nerr == nil && next == t.quote {
					field.WriteRune(t.quote) // escaped literal quote
					continue
				}
				if nerr == nil {
					_ = t.r.UnreadRune()
				}
				inQuotes = false
				continue
			}
			if r == '\n' {
				t.line++
			}
			field.WriteRune(r)
			continue
		}

		switch {
		case r == t.quote && field.Len() == 0:
			inQuotes = true
			sawQuote = true
		case r == t.delim:
			fields = append(fields, field.String())
			field.Reset()
		case r == '\r':
			// CRLF or a bare CR both end the record.
			if next, _, nerr := t.r.ReadRune(); nerr == nil && next != '\n' {
				_ = t.r.UnreadRune()
			}
			t.line++
			fields = append(fields, field.String())
			return fields, sawQuote, nil
		case r == '\n':
			t.line++
			fields = append(fields, field.String())
			return fields, sawQuote, nil
		default:
			field.WriteRune(r)
		}
	}
}
