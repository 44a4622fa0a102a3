package tabular

// convert.go implements the cell grammars shared by the Inferencer and
// the Column Parser. Each type has exactly one grammar: a value the
// Inferencer would accept for a type is a value the Column Parser accepts,
// and vice versa. All parse* functions return pgtype values with
// Valid=false for input that does not match, which doubles as the
// typed-missing representation.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	// integerRegex: optional sign, digits only, no decimal point.
	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)

	// doubleRegex: standard decimal or scientific notation.
	doubleRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	// numberRegex: a formatted number after normalization. No scientific
	// notation; pgtype.Numeric.Scan does not accept it.
	numberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
)

// Timestamp layouts tried in order when no explicit format is configured.
// A bare date is midnight.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseLogical accepts TRUE/FALSE/T/F, case-insensitive.
func parseLogical(s string) pgtype.Bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{}
	}
}

// parseInteger accepts an optional sign and digits within int64 range.
func parseInteger(s string) pgtype.Int8 {
	s = strings.TrimSpace(s)
	if !integerRegex.MatchString(s) {
		return pgtype.Int8{}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Out of 64-bit range; not an integer under this grammar.
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: i, Valid: true}
}

// parseDouble accepts standard decimal or scientific notation.
func parseDouble(s string) pgtype.Float8 {
	s = strings.TrimSpace(s)
	if !doubleRegex.MatchString(s) {
		return pgtype.Float8{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// parseNumber accepts a locale-formatted number: grouping marks, a
// substituted decimal mark, one leading/trailing run of currency or
// percent symbols, and the accounting negative form "(123.45)".
func parseNumber(s string, loc *Locale) pgtype.Numeric {
	cleaned, ok := normalizeNumber(s, loc)
	if !ok || !numberRegex.MatchString(cleaned) {
		return pgtype.Numeric{}
	}
	var n pgtype.Numeric
	if err := n.Scan(cleaned); err != nil {
		return pgtype.Numeric{}
	}
	return n
}

// normalizeNumber strips formatting down to a plain decimal string.
func normalizeNumber(s string, loc *Locale) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	// Accounting negative: "(123.45)".
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	dec := loc.decimalMark()
	grp := loc.groupingMark()
	keep := func(r rune) bool {
		return unicode.IsDigit(r) || r == dec || r == grp || r == '+' || r == '-'
	}

	// One leading and one trailing run of symbols (currency, percent).
	runes := []rune(s)
	start, end := 0, len(runes)
	for start < end && !keep(runes[start]) {
		start++
	}
	for end > start && !keep(runes[end-1]) {
		end--
	}
	s = string(runes[start:end])

	// Drop grouping marks, then map the decimal mark onto '.'.
	s = strings.ReplaceAll(s, string(grp), "")
	if dec != '.' {
		s = strings.ReplaceAll(s, string(dec), ".")
	}

	if negative {
		s = "-" + s
	}
	return s, s != ""
}

// parseDate accepts the locale's date layout (YYYY-MM-DD by default).
// A non-empty layout overrides the locale's.
func parseDate(s, layout string, loc *Locale) pgtype.Date {
	if layout == "" {
		layout = loc.dateLayout()
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}

// parseClock accepts a clock time, HH:MM[:SS] by default, stored as
// microseconds since midnight.
func parseClock(s, layout string, loc *Locale) pgtype.Time {
	s = strings.TrimSpace(s)
	layouts := []string{defaultTimeLayout, "15:04"}
	if layout == "" {
		layout = loc.timeLayoutOverride()
	}
	if layout != "" {
		layouts = []string{layout}
	}
	for _, l := range layouts {
		t, err := time.Parse(l, s)
		if err != nil {
			continue
		}
		us := int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
		us = us*1e6 + int64(t.Nanosecond())/1e3
		return pgtype.Time{Microseconds: us, Valid: true}
	}
	return pgtype.Time{}
}

// parseTimestamp accepts ISO-8601 combined date and time, the time
// defaulting to midnight when omitted. A non-empty layout (or the
// locale's TimestampFormat) replaces the built-in layouts.
func parseTimestamp(s, layout string, loc *Locale) pgtype.Timestamp {
	s = strings.TrimSpace(s)
	layouts := timestampLayouts
	if layout == "" {
		layout = loc.timestampLayout()
	}
	if layout != "" {
		layouts = []string{layout}
	}
	for _, l := range layouts {
		t, err := time.Parse(l, s)
		if err != nil {
			continue
		}
		return pgtype.Timestamp{Time: t, Valid: true}
	}
	return pgtype.Timestamp{}
}

// ----------------------------------------------------------------------------
// Canonical formatting
//
// The Writer and the re-infer mode render values with these functions.
// Every canonical form re-parses under the same type's grammar.
// ----------------------------------------------------------------------------

func formatLogical(v pgtype.Bool) string {
	if v.Bool {
		return "TRUE"
	}
	return "FALSE"
}

func formatInteger(v pgtype.Int8) string {
	return strconv.FormatInt(v.Int64, 10)
}

func formatDouble(v pgtype.Float8) string {
	return strconv.FormatFloat(v.Float64, 'g', -1, 64)
}

func formatNumber(v pgtype.Numeric) string {
	if dv, err := v.Value(); err == nil {
		if s, ok := dv.(string); ok {
			return s
		}
	}
	f, err := v.Float64Value()
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(f.Float64, 'g', -1, 64)
}

func formatDate(v pgtype.Date) string {
	return v.Time.Format(defaultDateLayout)
}

func formatClock(v pgtype.Time) string {
	sec := v.Microseconds / 1e6
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

func formatTimestamp(v pgtype.Timestamp) string {
	return v.Time.Format("2006-01-02T15:04:05")
}
