package tabular

// column.go defines the typed column containers that back a TypedTable.
// Each container holds pgtype values whose Valid flag is the typed-missing
// representation, so a missing cell is distinguishable from every real
// value of the column's type.

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Column is one typed column of a TypedTable. Concrete implementations
// expose their backing value slice (for example IntegerColumn.Values) for
// direct typed access.
type Column interface {
	// Spec returns the column's specification. Factor columns report the
	// levels actually collected.
	Spec() ColumnSpec

	// Len returns the number of cells.
	Len() int

	// IsMissing reports whether the cell at i is typed-missing.
	IsMissing(i int) bool

	// Format renders the cell at i canonically; missing cells render as
	// the empty string (the Writer substitutes its missing marker).
	Format(i int) string

	// appendCell parses raw and appends it. On grammar mismatch the cell
	// is appended as typed-missing and appendCell reports false.
	appendCell(raw string) bool

	// appendMissing appends a typed-missing cell.
	appendMissing()
}

// newColumn builds the container for a spec. The locale is captured so
// number, date and time cells parse consistently across the column.
func newColumn(spec ColumnSpec, loc *Locale) Column {
	switch spec.Type {
	case TypeLogical:
		return &LogicalColumn{spec: spec}
	case TypeInteger:
		return &IntegerColumn{spec: spec}
	case TypeDouble:
		return &DoubleColumn{spec: spec}
	case TypeNumber:
		return &NumberColumn{spec: spec, loc: loc}
	case TypeDate:
		return &DateColumn{spec: spec, loc: loc}
	case TypeTime:
		return &TimeColumn{spec: spec, loc: loc}
	case TypeTimestamp:
		return &TimestampColumn{spec: spec, loc: loc}
	case TypeFactor:
		return newFactorColumn(spec)
	default:
		return &CharacterColumn{spec: spec}
	}
}

// LogicalColumn stores TRUE/FALSE cells.
type LogicalColumn struct {
	spec   ColumnSpec
	Values []pgtype.Bool
}

func (c *LogicalColumn) Spec() ColumnSpec { return c.spec }
func (c *LogicalColumn) Len() int { return len(c.Values) }
func (c *LogicalColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *LogicalColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatLogical(c.Values[i])
}

func (c *LogicalColumn) appendCell(raw string) bool {
	v := parseLogical(raw)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *LogicalColumn) appendMissing() { c.Values = append(c.Values, pgtype.Bool{}) }

// IntegerColumn stores 64-bit signed integer cells.
type IntegerColumn struct {
	spec   ColumnSpec
	Values []pgtype.Int8
}

func (c *IntegerColumn) Spec() ColumnSpec { return c.spec }
func (c *IntegerColumn) Len() int { return len(c.Values) }
func (c *IntegerColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *IntegerColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatInteger(c.Values[i])
}

func (c *IntegerColumn) appendCell(raw string) bool {
	v := parseInteger(raw)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *IntegerColumn) appendMissing() { c.Values = append(c.Values, pgtype.Int8{}) }

// DoubleColumn stores float64 cells.
type DoubleColumn struct {
	spec   ColumnSpec
	Values []pgtype.Float8
}

func (c *DoubleColumn) Spec() ColumnSpec { return c.spec }
func (c *DoubleColumn) Len() int { return len(c.Values) }
func (c *DoubleColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *DoubleColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatDouble(c.Values[i])
}

func (c *DoubleColumn) appendCell(raw string) bool {
	v := parseDouble(raw)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *DoubleColumn) appendMissing() { c.Values = append(c.Values, pgtype.Float8{}) }

// NumberColumn stores locale-formatted numbers as arbitrary-precision
// numerics, so currency-style values keep their exact decimal digits.
type NumberColumn struct {
	spec   ColumnSpec
	loc    *Locale
	Values []pgtype.Numeric
}

func (c *NumberColumn) Spec() ColumnSpec { return c.spec }
func (c *NumberColumn) Len() int { return len(c.Values) }
func (c *NumberColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *NumberColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatNumber(c.Values[i])
}

func (c *NumberColumn) appendCell(raw string) bool {
	v := parseNumber(raw, c.loc)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *NumberColumn) appendMissing() { c.Values = append(c.Values, pgtype.Numeric{}) }

// CharacterColumn stores cells verbatim; every value parses.
type CharacterColumn struct {
	spec   ColumnSpec
	Values []pgtype.Text
}

func (c *CharacterColumn) Spec() ColumnSpec { return c.spec }
func (c *CharacterColumn) Len() int { return len(c.Values) }
func (c *CharacterColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *CharacterColumn) Format(i int) string { return c.Values[i].String }

func (c *CharacterColumn) appendCell(raw string) bool {
	c.Values = append(c.Values, pgtype.Text{String: raw, Valid: true})
	return true
}

func (c *CharacterColumn) appendMissing() { c.Values = append(c.Values, pgtype.Text{}) }

// DateColumn stores calendar dates.
type DateColumn struct {
	spec   ColumnSpec
	loc    *Locale
	Values []pgtype.Date
}

func (c *DateColumn) Spec() ColumnSpec { return c.spec }
func (c *DateColumn) Len() int { return len(c.Values) }
func (c *DateColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *DateColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatDate(c.Values[i])
}

func (c *DateColumn) appendCell(raw string) bool {
	v := parseDate(raw, c.spec.Format, c.loc)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *DateColumn) appendMissing() { c.Values = append(c.Values, pgtype.Date{}) }

// TimeColumn stores clock times as microseconds since midnight.
type TimeColumn struct {
	spec   ColumnSpec
	loc    *Locale
	Values []pgtype.Time
}

func (c *TimeColumn) Spec() ColumnSpec { return c.spec }
func (c *TimeColumn) Len() int { return len(c.Values) }
func (c *TimeColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *TimeColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatClock(c.Values[i])
}

func (c *TimeColumn) appendCell(raw string) bool {
	v := parseClock(raw, c.spec.Format, c.loc)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *TimeColumn) appendMissing() { c.Values = append(c.Values, pgtype.Time{}) }

// TimestampColumn stores combined date-times.
type TimestampColumn struct {
	spec   ColumnSpec
	loc    *Locale
	Values []pgtype.Timestamp
}

func (c *TimestampColumn) Spec() ColumnSpec { return c.spec }
func (c *TimestampColumn) Len() int { return len(c.Values) }
func (c *TimestampColumn) IsMissing(i int) bool { return !c.Values[i].Valid }

func (c *TimestampColumn) Format(i int) string {
	if !c.Values[i].Valid {
		return ""
	}
	return formatTimestamp(c.Values[i])
}

func (c *TimestampColumn) appendCell(raw string) bool {
	v := parseTimestamp(raw, c.spec.Format, c.loc)
	c.Values = append(c.Values, v)
	return v.Valid
}

func (c *TimestampColumn) appendMissing() { c.Values = append(c.Values, pgtype.Timestamp{}) }

// FactorColumn stores cells as codes into a level table. With declared
// levels the grammar is closed: a value outside the levels fails. With no
// declared levels, new levels are collected in order of first appearance.
type FactorColumn struct {
	spec   ColumnSpec
	Levels []string
	Codes  []pgtype.Int4

	index map[string]int32
	open  bool
}

func newFactorColumn(spec ColumnSpec) *FactorColumn {
	c := &FactorColumn{
		spec:  spec,
		open:  len(spec.Levels) == 0,
		index: make(map[string]int32, len(spec.Levels)),
	}
	for _, lv := range spec.Levels {
		if _, dup := c.index[lv]; dup {
			continue
		}
		c.index[lv] = int32(len(c.Levels))
		c.Levels = append(c.Levels, lv)
	}
	return c
}

func (c *FactorColumn) Spec() ColumnSpec {
	s := c.spec
	s.Levels = append([]string(nil), c.Levels...)
	return s
}

func (c *FactorColumn) Len() int { return len(c.Codes) }
func (c *FactorColumn) IsMissing(i int) bool { return !c.Codes[i].Valid }

func (c *FactorColumn) Format(i int) string {
	if !c.Codes[i].Valid {
		return ""
	}
	return c.Levels[c.Codes[i].Int32]
}

// Level returns the level string for the cell at i, or "" when missing.
func (c *FactorColumn) Level(i int) string { return c.Format(i) }

func (c *FactorColumn) appendCell(raw string) bool {
	raw = strings.TrimSpace(raw)
	code, ok := c.index[raw]
	if !ok {
		if !c.open {
			c.Codes = append(c.Codes, pgtype.Int4{})
			return false
		}
		code = int32(len(c.Levels))
		c.index[raw] = code
		c.Levels = append(c.Levels, raw)
	}
	c.Codes = append(c.Codes, pgtype.Int4{Int32: code, Valid: true})
	return true
}

func (c *FactorColumn) appendMissing() { c.Codes = append(c.Codes, pgtype.Int4{}) }
