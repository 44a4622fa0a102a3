// Package arrowconv converts typed tables into Apache Arrow record
// batches, the lingua franca of downstream analysis tooling. Typed
// missing cells become Arrow nulls; factor columns are materialized as
// their level strings.
package arrowconv

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/JonMunkholm/tabular"
)

// Schema returns the Arrow schema a table converts to. All fields are
// nullable because every column type has a typed-missing value.
func Schema(t *tabular.TypedTable) (*arrow.Schema, error) {
	fields := make([]arrow.Field, t.NumCols())
	for i, col := range t.Columns {
		spec := col.Spec()
		dt, err := dataType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("arrowconv: column %q: %w", spec.Name, err)
		}
		fields[i] = arrow.Field{Name: spec.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

// Record converts a typed table into one Arrow record batch. The caller
// owns the returned record and must Release it.
func Record(t *tabular.TypedTable) (arrow.Record, error) {
	schema, err := Schema(t)
	if err != nil {
		return nil, err
	}

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i, col := range t.Columns {
		if err := appendColumn(b.Field(i), col); err != nil {
			return nil, fmt.Errorf("arrowconv: column %q: %w", col.Spec().Name, err)
		}
	}

	return b.NewRecord(), nil
}

func dataType(t tabular.ColumnType) (arrow.DataType, error) {
	switch t {
	case tabular.TypeLogical:
		return arrow.FixedWidthTypes.Boolean, nil
	case tabular.TypeInteger:
		return arrow.PrimitiveTypes.Int64, nil
	case tabular.TypeDouble, tabular.TypeNumber:
		return arrow.PrimitiveTypes.Float64, nil
	case tabular.TypeDate:
		return arrow.FixedWidthTypes.Date32, nil
	case tabular.TypeTime:
		return arrow.FixedWidthTypes.Time64us, nil
	case tabular.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case tabular.TypeCharacter, tabular.TypeFactor:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("unsupported column type %s", t)
	}
}

func appendColumn(b array.Builder, col tabular.Column) error {
	switch c := col.(type) {
	case *tabular.LogicalColumn:
		bb := b.(*array.BooleanBuilder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(v.Bool)
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.IntegerColumn:
		bb := b.(*array.Int64Builder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(v.Int64)
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.DoubleColumn:
		bb := b.(*array.Float64Builder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(v.Float64)
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.NumberColumn:
		bb := b.(*array.Float64Builder)
		for _, v := range c.Values {
			if !v.Valid {
				bb.AppendNull()
				continue
			}
			f, err := v.Float64Value()
			if err != nil {
				return fmt.Errorf("numeric to float64: %w", err)
			}
			bb.Append(f.Float64)
		}

	case *tabular.DateColumn:
		bb := b.(*array.Date32Builder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(arrow.Date32FromTime(v.Time))
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.TimeColumn:
		bb := b.(*array.Time64Builder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(arrow.Time64(v.Microseconds))
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.TimestampColumn:
		bb := b.(*array.TimestampBuilder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(arrow.Timestamp(v.Time.UnixMicro()))
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.CharacterColumn:
		bb := b.(*array.StringBuilder)
		for _, v := range c.Values {
			if v.Valid {
				bb.Append(v.String)
			} else {
				bb.AppendNull()
			}
		}

	case *tabular.FactorColumn:
		bb := b.(*array.StringBuilder)
		for i := range c.Codes {
			if c.Codes[i].Valid {
				bb.Append(c.Levels[c.Codes[i].Int32])
			} else {
				bb.AppendNull()
			}
		}

	default:
		return fmt.Errorf("unsupported column implementation %T", col)
	}
	return nil
}
