package schemafile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/tabular"
)

const sampleDoc = `
columns:
  - name: carrier
    type: factor
    levels: [AA, UA, DL]
  - name: dep_time
    type: time
  - name: price
    type: number
missing: ["", "NA", "NULL"]
locale:
  decimal_mark: ","
  grouping_mark: "."
sample_size: 200
`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	require.Len(t, doc.Columns, 3)
	assert.Equal(t, "carrier", doc.Columns[0].Name)
	assert.Equal(t, []string{"AA", "UA", "DL"}, doc.Columns[0].Levels)
	assert.Equal(t, []string{"", "NA", "NULL"}, doc.Missing)
	assert.Equal(t, 200, doc.SampleSize)
	require.NotNil(t, doc.Locale)
	assert.Equal(t, ",", doc.Locale.DecimalMark)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(strings.NewReader("colums:\n  - name: x\n"))
	require.Error(t, err)
}

func TestDocument_TypeOptions(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	opts, err := doc.TypeOptions()
	require.NoError(t, err)

	assert.Equal(t, 200, opts.SampleSize)
	assert.Equal(t, []string{"", "NA", "NULL"}, opts.Missing)

	require.Contains(t, opts.ColumnTypes, "carrier")
	carrier := opts.ColumnTypes["carrier"]
	assert.Equal(t, tabular.TypeFactor, carrier.Type)
	assert.Equal(t, []string{"AA", "UA", "DL"}, carrier.Levels)
	assert.Equal(t, tabular.TypeTime, opts.ColumnTypes["dep_time"].Type)
	assert.Equal(t, tabular.TypeNumber, opts.ColumnTypes["price"].Type)

	require.NotNil(t, opts.Locale)
	assert.Equal(t, ',', opts.Locale.DecimalMark)
	assert.Equal(t, '.', opts.Locale.GroupingMark)
}

func TestDocument_TypeOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown type", doc: "columns:\n  - name: x\n    type: blob\n"},
		{name: "missing column name", doc: "columns:\n  - type: integer\n"},
		{name: "multi rune decimal mark", doc: "locale:\n  decimal_mark: \"ab\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(strings.NewReader(tt.doc))
			require.NoError(t, err)
			_, err = doc.TypeOptions()
			require.Error(t, err)
		})
	}
}

func TestSchemaDrivenRead(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	opts, err := doc.TypeOptions()
	require.NoError(t, err)

	src := "carrier,dep_time,price\nAA,06:15,\"1.234,56\"\nNULL,23:40,99\n"
	table, problems, err := tabular.ReadTable(src, tabular.DefaultReadOptions(), opts)
	require.NoError(t, err)
	assert.Zero(t, problems.Len(), "problems: %v", problems.Records())

	carrier, ok := table.Column("carrier").(*tabular.FactorColumn)
	require.True(t, ok)
	assert.Equal(t, "AA", carrier.Level(0))
	assert.True(t, carrier.IsMissing(1), "NULL marker should be typed-missing")

	price, ok := table.Column("price").(*tabular.NumberColumn)
	require.True(t, ok)
	f, err := price.Values[0].Float64Value()
	require.NoError(t, err)
	assert.Equal(t, 1234.56, f.Float64)
}
