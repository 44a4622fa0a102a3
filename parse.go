package tabular

// parse.go is the Column Parser: it applies column specs to a raw table,
// converting every cell to its column's type in one streaming pass. A
// cell that matches a missing marker or fails its type's grammar becomes
// typed-missing; failures are additionally recorded in the problems
// collector. A single bad cell never aborts the operation.

import (
	"fmt"

	"github.com/JonMunkholm/tabular/internal/logging"
)

// TypedTable is the Column Parser's output: one typed column per
// ColumnSpec, in table order. It holds no reference back to the RawTable.
type TypedTable struct {
	Columns []Column
}

// NumCols returns the number of columns.
func (t *TypedTable) NumCols() int { return len(t.Columns) }

// NumRows returns the number of rows.
func (t *TypedTable) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Column returns the column with the given name, or nil.
func (t *TypedTable) Column(name string) Column {
	for _, c := range t.Columns {
		if c.Spec().Name == name {
			return c
		}
	}
	return nil
}

// Specs returns the specs of all columns in table order.
func (t *TypedTable) Specs() []ColumnSpec {
	out := make([]ColumnSpec, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Spec()
	}
	return out
}

// Apply converts every cell of raw to its column's declared type. One
// spec per column is expected, in table order; missing trailing specs
// default to character. Ragged-row problems recorded during reading are
// folded into the returned collector ahead of cell failures.
func Apply(raw *RawTable, specs []ColumnSpec, opts TypeOptions) (*TypedTable, *Problems) {
	problems := NewProblems()
	problems.merge(raw.problems)
	table := applyInto(raw, specs, opts, problems)
	return table, problems
}

// ReadTable is the full pipeline: Parse, then Infer, then Apply, sharing
// one problems collector. Column declarations and locale come from opts.
func ReadTable(src string, ro ReadOptions, opts TypeOptions) (*TypedTable, *Problems, error) {
	raw, err := Parse(src, ro)
	if err != nil {
		return nil, nil, err
	}

	problems := NewProblems()
	problems.merge(raw.problems)

	specs, advisories := Infer(raw, opts)
	problems.merge(advisories)

	table := applyInto(raw, specs, opts, problems)
	return table, problems, nil
}

// ReinferStrings takes a table whose columns are all character,
// stringifies it, and re-runs inference and parsing as a single pass.
// Used when an earlier parse defensively fell back to character
// everywhere. Missing cells stay missing through the round trip.
func ReinferStrings(t *TypedTable, opts TypeOptions) (*TypedTable, *Problems, error) {
	for _, c := range t.Columns {
		if c.Spec().Type != TypeCharacter {
			return nil, nil, fmt.Errorf("reinfer: column %q is %s, want character",
				c.Spec().Name, c.Spec().Type)
		}
	}

	marker := "NA"
	if m := opts.missing(); len(m) > 0 {
		marker = m[0]
	}

	raw := &RawTable{Names: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		raw.Names[i] = c.Spec().Name
	}
	for r := 0; r < t.NumRows(); r++ {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			if c.IsMissing(r) {
				row[i] = marker
			} else {
				row[i] = c.Format(r)
			}
		}
		raw.Rows = append(raw.Rows, row)
	}

	problems := NewProblems()
	specs, advisories := Infer(raw, opts)
	problems.merge(advisories)
	table := applyInto(raw, specs, opts, problems)
	return table, problems, nil
}

// applyInto does the cell-by-cell conversion, appending failures to an
// existing collector.
func applyInto(raw *RawTable, specs []ColumnSpec, opts TypeOptions, problems *Problems) *TypedTable {
	specs = padSpecs(raw, specs)

	cols := make([]Column, len(specs))
	for i, spec := range specs {
		cols[i] = newColumn(spec, opts.Locale)
	}

	for rowIdx, row := range raw.Rows {
		for c, col := range cols {
			cell := row[c]
			if opts.isMissing(cell) {
				col.appendMissing()
				continue
			}
			if !col.appendCell(cell) {
				problems.add(Problem{
					Row:      rowIdx,
					Column:   specs[c].Name,
					Raw:      cell,
					Expected: specs[c].Type.String(),
					Reason:   "value does not match column type",
					Kind:     ProblemCellParse,
					Severity: SeverityWarning,
				})
			}
		}
	}

	if opts.Logger != nil {
		logging.WithOperation(opts.Logger, problems.OperationID()).Debug(
			"typed table built",
			"rows", raw.NumRows(),
			"cols", len(cols),
			"problems", problems.Len(),
		)
	}
	return &TypedTable{Columns: cols}
}

// padSpecs aligns the spec list with the table width: extra trailing
// columns default to character, extra specs are ignored.
func padSpecs(raw *RawTable, specs []ColumnSpec) []ColumnSpec {
	width := raw.NumCols()
	if len(specs) > width {
		return specs[:width]
	}
	for i := len(specs); i < width; i++ {
		specs = append(specs, ColumnSpec{Name: raw.Names[i], Type: TypeCharacter})
	}
	return specs
}
