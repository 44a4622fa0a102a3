package tabular

// types.go defines the shared vocabulary of the import pipeline: column
// types, column specifications, the raw (untyped) table produced by the
// Reader, and the option structs threaded through Infer and Apply.

import (
	"log/slog"

	"github.com/JonMunkholm/tabular/internal/config"
	"github.com/JonMunkholm/tabular/internal/logging"
)

// ColumnType identifies the storage type of a column.
type ColumnType int

const (
	// TypeCharacter is the fallback type; every value parses as character.
	TypeCharacter ColumnType = iota

	// TypeLogical accepts TRUE/FALSE/T/F, case-insensitive.
	TypeLogical

	// TypeInteger accepts an optional sign followed by digits, within the
	// 64-bit signed range.
	TypeInteger

	// TypeDouble accepts standard decimal or scientific notation.
	TypeDouble

	// TypeNumber is a double with locale-driven formatting tolerated:
	// grouping marks, a substituted decimal mark, and a single
	// leading/trailing run of currency or percent symbols.
	TypeNumber

	// TypeDate accepts calendar dates, YYYY-MM-DD by default.
	TypeDate

	// TypeTime accepts clock times, HH:MM[:SS] by default.
	TypeTime

	// TypeTimestamp accepts ISO-8601 combined date and time; a bare date
	// is midnight.
	TypeTimestamp

	// TypeFactor stores values as codes into a level table. Factors are
	// never inferred; they must be declared.
	TypeFactor
)

// String returns the lowercase name of the type as used in problem
// records and schema files.
func (t ColumnType) String() string {
	switch t {
	case TypeLogical:
		return "logical"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeNumber:
		return "number"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeTimestamp:
		return "datetime"
	case TypeFactor:
		return "factor"
	default:
		return "character"
	}
}

// ColumnSpec describes one column of a table: its unique name, its
// inferred or declared type, and optional per-column parsing details.
type ColumnSpec struct {
	Name string
	Type ColumnType

	// Format overrides the locale's layout for date, time and datetime
	// columns. Go reference-time layout syntax.
	Format string

	// Levels is the level table for factor columns. Empty means levels
	// are collected from the data in order of first appearance.
	Levels []string
}

// RaggedPolicy controls how rows whose field count differs from the
// header are repaired. Either way the row is recorded as a problem.
type RaggedPolicy int

const (
	// RaggedPad pads short rows with missing values and truncates long
	// rows to the header width. Default.
	RaggedPad RaggedPolicy = iota

	// RaggedTruncate truncates long rows to the header width and drops
	// short rows entirely (a short row cannot be truncated into shape).
	RaggedTruncate
)

// RawTable is the Reader's output: column names plus rows of raw string
// fields. Every row has exactly NumCols fields; ragged source rows are
// repaired during reading and recorded as problems.
type RawTable struct {
	Names []string
	Rows  [][]string

	problems []Problem
}

// NumRows returns the number of data rows.
func (r *RawTable) NumRows() int { return len(r.Rows) }

// NumCols returns the number of columns.
func (r *RawTable) NumCols() int { return len(r.Names) }

// ReadProblems returns the problems recorded while reading (ragged rows).
// Apply folds these into its collector automatically.
func (r *RawTable) ReadProblems() []Problem {
	out := make([]Problem, len(r.problems))
	copy(out, r.problems)
	return out
}

// TypeOptions configures inference and column parsing.
type TypeOptions struct {
	// SampleSize is the maximum number of leading values inspected per
	// column during inference. Zero means the configured default (1000).
	SampleSize int

	// Missing lists the marker strings denoting "no data". Nil means the
	// configured default ("" and "NA"). An empty non-nil slice disables
	// missing markers entirely.
	Missing []string

	// Locale supplies decimal/grouping marks, charset and layout
	// templates. Nil means the default locale; supplying a locale also
	// enables the formatted-number inference candidate.
	Locale *Locale

	// ColumnTypes declares specs for named columns, bypassing inference.
	// The map key wins over the spec's Name field.
	ColumnTypes map[string]ColumnSpec

	// Logger receives debug-level summaries of inference and parsing.
	// Nil disables logging.
	Logger *slog.Logger
}

// DefaultTypeOptions returns options seeded from the environment-driven
// defaults: sample size and missing markers (TABULAR_SAMPLE_SIZE,
// TABULAR_MISSING) plus a Logger built from TABULAR_LOG_LEVEL and
// TABULAR_LOG_FORMAT. Unset or invalid environments fall back to the
// built-in defaults.
func DefaultTypeOptions() TypeOptions {
	d, err := config.Load()
	if err != nil {
		return TypeOptions{}
	}
	return TypeOptions{
		SampleSize: d.SampleSize,
		Missing:    d.Missing,
		Logger:     logging.New(d.LogLevel, d.LogFormat),
	}
}

func (o TypeOptions) sampleSize() int {
	if o.SampleSize > 0 {
		return o.SampleSize
	}
	return config.DefaultSampleSize
}

func (o TypeOptions) missing() []string {
	if o.Missing == nil {
		return config.DefaultMissing
	}
	return o.Missing
}

func (o TypeOptions) isMissing(s string) bool {
	for _, m := range o.missing() {
		if s == m {
			return true
		}
	}
	return false
}
