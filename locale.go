package tabular

// locale.go holds the locale configuration for number formatting, charset
// decoding and date/time layouts. Everything is explicit: each field
// defaults independently, and nothing is auto-detected from the data.

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Default layout templates, Go reference-time syntax.
const (
	defaultDateLayout = "2006-01-02"
	defaultTimeLayout = "15:04:05"
)

// Locale configures locale-sensitive parsing. The zero value is not
// useful; use DefaultLocale and override fields, or leave
// TypeOptions.Locale nil to get default behavior without the
// formatted-number candidate.
type Locale struct {
	// DecimalMark separates the integer and fractional parts of a
	// formatted number (default '.').
	DecimalMark rune

	// GroupingMark separates digit groups in a formatted number
	// (default ',').
	GroupingMark rune

	// Encoding names the source charset: "utf-8" (default), "latin-1" /
	// "iso-8859-1", "windows-1252", "utf-16", "utf-16le", "utf-16be".
	Encoding string

	// DateFormat, TimeFormat and TimestampFormat override the default
	// layouts for the corresponding column types. Empty means default.
	DateFormat      string
	TimeFormat      string
	TimestampFormat string
}

// DefaultLocale returns a locale with period decimal mark, comma grouping
// mark, UTF-8 encoding and ISO-8601 layouts.
func DefaultLocale() *Locale {
	return &Locale{DecimalMark: '.', GroupingMark: ','}
}

func (l *Locale) decimalMark() rune {
	if l == nil || l.DecimalMark == 0 {
		return '.'
	}
	return l.DecimalMark
}

func (l *Locale) groupingMark() rune {
	if l == nil || l.GroupingMark == 0 {
		return ','
	}
	return l.GroupingMark
}

func (l *Locale) dateLayout() string {
	if l == nil || l.DateFormat == "" {
		return defaultDateLayout
	}
	return l.DateFormat
}

func (l *Locale) timeLayoutOverride() string {
	if l == nil {
		return ""
	}
	return l.TimeFormat
}

func (l *Locale) timestampLayout() string {
	if l == nil {
		return ""
	}
	return l.TimestampFormat
}

func (l *Locale) encodingName() string {
	if l == nil {
		return ""
	}
	return l.Encoding
}

// lookupEncoding resolves a charset name to an x/text encoding. A nil
// encoding with nil error means the source is already UTF-8 and needs no
// transform. Unknown names are a structural failure: the source cannot be
// decoded under the declared charset.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	default:
		return nil, &MalformedSourceError{Reason: fmt.Sprintf("unsupported encoding %q", name)}
	}
}
