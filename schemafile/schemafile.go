// Package schemafile loads declarative column specifications from YAML
// documents, so callers can keep type declarations in a sidecar file
// next to the data instead of in code:
//
//	columns:
//	  - name: carrier
//	    type: factor
//	    levels: [AA, UA, DL]
//	  - name: dep_time
//	    type: time
//	missing: ["", "NA", "NULL"]
//	locale:
//	  decimal_mark: ","
//	  grouping_mark: "."
//
// The document maps onto tabular.TypeOptions via [Document.TypeOptions].
package schemafile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/tabular"
)

// Document is the root of a schema file.
type Document struct {
	Columns    []Column `yaml:"columns"`
	Missing    []string `yaml:"missing,omitempty"`
	Locale     *Locale  `yaml:"locale,omitempty"`
	SampleSize int      `yaml:"sample_size,omitempty"`
}

// Column declares one column's type.
type Column struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Format string   `yaml:"format,omitempty"`
	Levels []string `yaml:"levels,omitempty"`
}

// Locale mirrors tabular.Locale with string-typed marks so it can be
// written naturally in YAML.
type Locale struct {
	DecimalMark     string `yaml:"decimal_mark,omitempty"`
	GroupingMark    string `yaml:"grouping_mark,omitempty"`
	Encoding        string `yaml:"encoding,omitempty"`
	DateFormat      string `yaml:"date_format,omitempty"`
	TimeFormat      string `yaml:"time_format,omitempty"`
	TimestampFormat string `yaml:"timestamp_format,omitempty"`
}

// Load decodes a schema document from r. Unknown fields are an error so
// typos in hand-written files surface immediately.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode: %w", err)
	}
	return &doc, nil
}

// LoadFile decodes a schema document from a file path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// TypeOptions converts the document into options for tabular.Infer and
// tabular.Apply. Fields absent from the document keep their zero value
// so the library's defaults apply.
func (d *Document) TypeOptions() (tabular.TypeOptions, error) {
	opts := tabular.TypeOptions{
		SampleSize: d.SampleSize,
		Missing:    d.Missing,
	}

	if len(d.Columns) > 0 {
		opts.ColumnTypes = make(map[string]tabular.ColumnSpec, len(d.Columns))
		for _, c := range d.Columns {
			if c.Name == "" {
				return tabular.TypeOptions{}, fmt.Errorf("schemafile: column declaration missing a name")
			}
			typ, err := parseType(c.Type)
			if err != nil {
				return tabular.TypeOptions{}, fmt.Errorf("schemafile: column %q: %w", c.Name, err)
			}
			opts.ColumnTypes[c.Name] = tabular.ColumnSpec{
				Name:   c.Name,
				Type:   typ,
				Format: c.Format,
				Levels: c.Levels,
			}
		}
	}

	if d.Locale != nil {
		loc, err := d.Locale.toLocale()
		if err != nil {
			return tabular.TypeOptions{}, err
		}
		opts.Locale = loc
	}

	return opts, nil
}

func (l *Locale) toLocale() (*tabular.Locale, error) {
	out := tabular.DefaultLocale()

	set := func(field, v string, dst *rune) error {
		if v == "" {
			return nil
		}
		runes := []rune(v)
		if len(runes) != 1 {
			return fmt.Errorf("schemafile: locale %s %q must be a single character", field, v)
		}
		*dst = runes[0]
		return nil
	}

	if err := set("decimal_mark", l.DecimalMark, &out.DecimalMark); err != nil {
		return nil, err
	}
	if err := set("grouping_mark", l.GroupingMark, &out.GroupingMark); err != nil {
		return nil, err
	}

	out.Encoding = l.Encoding
	out.DateFormat = l.DateFormat
	out.TimeFormat = l.TimeFormat
	out.TimestampFormat = l.TimestampFormat
	return out, nil
}

// parseType maps a schema-file type name onto a ColumnType.
func parseType(name string) (tabular.ColumnType, error) {
	switch name {
	case "logical":
		return tabular.TypeLogical, nil
	case "integer":
		return tabular.TypeInteger, nil
	case "double":
		return tabular.TypeDouble, nil
	case "number":
		return tabular.TypeNumber, nil
	case "character", "":
		return tabular.TypeCharacter, nil
	case "date":
		return tabular.TypeDate, nil
	case "time":
		return tabular.TypeTime, nil
	case "datetime", "date-time":
		return tabular.TypeTimestamp, nil
	case "factor":
		return tabular.TypeFactor, nil
	default:
		return tabular.TypeCharacter, fmt.Errorf("unknown type %q", name)
	}
}
