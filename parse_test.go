package tabular

import (
	"reflect"
	"testing"
)

// ----------------------------------------------------------------------------
// ReadTable: the full pipeline
// ----------------------------------------------------------------------------

func TestReadTable_Integers(t *testing.T) {
	table, problems, err := ReadTable("x,y,z\n1,2,3\n4,5,6\n", DefaultReadOptions(), TypeOptions{})
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if problems.Len() != 0 {
		t.Fatalf("problems = %v, want none", problems.Records())
	}

	if table.NumCols() != 3 || table.NumRows() != 2 {
		t.Fatalf("got %dx%d table, want 3x2", table.NumCols(), table.NumRows())
	}

	wantFirst := []int64{1, 4}
	col, ok := table.Column("x").(*IntegerColumn)
	if !ok {
		t.Fatalf("column x is %T, want *IntegerColumn", table.Column("x"))
	}
	for i, want := range wantFirst {
		if !col.Values[i].Valid || col.Values[i].Int64 != want {
			t.Errorf("x[%d] = %+v, want %d", i, col.Values[i], want)
		}
	}
}

func TestReadTable_MissingMarkersNeverStored(t *testing.T) {
	table, problems, err := ReadTable("x\nNA\n5\n\n7\n", DefaultReadOptions(), TypeOptions{})
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if problems.Len() != 0 {
		t.Fatalf("problems = %v, want none", problems.Records())
	}

	col := table.Column("x").(*IntegerColumn)
	if !col.IsMissing(0) {
		t.Error("x[0] should be typed-missing, marker must not be stored")
	}
	if col.Values[1].Int64 != 5 || col.Values[2].Int64 != 7 {
		t.Errorf("values = %+v, want 5 and 7", col.Values[1:])
	}
}

func TestReadTable_EmptyData(t *testing.T) {
	table, problems, err := ReadTable("x,y,z\n", DefaultReadOptions(), TypeOptions{})
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	if table.NumCols() != 3 || table.NumRows() != 0 {
		t.Fatalf("got %dx%d table, want 3x0", table.NumCols(), table.NumRows())
	}
	for _, c := range table.Columns {
		if c.Spec().Type != TypeCharacter {
			t.Errorf("column %s is %s, want character", c.Spec().Name, c.Spec().Type)
		}
	}

	// One all-missing advisory per column, nothing else.
	if problems.Len() != 3 {
		t.Fatalf("problems len = %d, want 3", problems.Len())
	}
	for _, p := range problems.Records() {
		if p.Kind != ProblemAmbiguousInference || p.Severity != SeverityAdvisory {
			t.Errorf("problem = %+v, want ambiguous-inference advisory", p)
		}
	}
}

func TestReadTable_LocaleNumbers(t *testing.T) {
	opts := TypeOptions{Locale: DefaultLocale()}
	table, problems, err := ReadTable("rate\n20%\n30%\n", DefaultReadOptions(), opts)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if problems.Len() != 0 {
		t.Fatalf("problems = %v, want none", problems.Records())
	}

	col, ok := table.Column("rate").(*NumberColumn)
	if !ok {
		t.Fatalf("column rate is %T, want *NumberColumn", table.Column("rate"))
	}
	want := []float64{20, 30}
	for i, w := range want {
		f, err := col.Values[i].Float64Value()
		if err != nil {
			t.Fatalf("Float64Value: %v", err)
		}
		if f.Float64 != w {
			t.Errorf("rate[%d] = %g, want %g", i, f.Float64, w)
		}
	}
}

func TestReadTable_RaggedProblemsPrecedeCellProblems(t *testing.T) {
	src := "x,y\n1,2\n3\nabc,4\n"
	opts := TypeOptions{
		ColumnTypes: map[string]ColumnSpec{"x": {Type: TypeInteger}},
	}

	table, problems, err := ReadTable(src, DefaultReadOptions(), opts)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	recs := problems.Records()
	if len(recs) != 2 {
		t.Fatalf("problems = %v, want 2", recs)
	}
	if recs[0].Kind != ProblemRaggedRow || recs[0].Row != 1 {
		t.Errorf("first problem = %+v, want ragged row at row 1", recs[0])
	}
	if recs[1].Kind != ProblemCellParse || recs[1].Row != 2 || recs[1].Column != "x" {
		t.Errorf("second problem = %+v, want cell failure at row 2 column x", recs[1])
	}

	// The padded cell is missing, the failed cell is missing, good cells kept.
	col := table.Column("y").(*IntegerColumn)
	if !col.IsMissing(1) {
		t.Error("padded y[1] should be typed-missing")
	}
	x := table.Column("x").(*IntegerColumn)
	if !x.IsMissing(2) {
		t.Error("failed x[2] should be typed-missing")
	}
	if x.Values[0].Int64 != 1 || x.Values[1].Int64 != 3 {
		t.Errorf("x values = %+v, want 1 and 3", x.Values[:2])
	}
}

// ----------------------------------------------------------------------------
// Apply: declared specs
// ----------------------------------------------------------------------------

func TestApply_DeclaredIntegerFailure(t *testing.T) {
	raw, err := Parse("x,y\n1,2\nabc,3\n", DefaultReadOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	specs := []ColumnSpec{
		{Name: "x", Type: TypeInteger},
		{Name: "y", Type: TypeInteger},
	}
	table, problems := Apply(raw, specs, TypeOptions{})

	recs := problems.Records()
	if len(recs) != 1 {
		t.Fatalf("problems = %v, want exactly 1", recs)
	}
	p := recs[0]
	if p.Row != 1 || p.Column != "x" || p.Raw != "abc" || p.Expected != "integer" {
		t.Errorf("problem = %+v, want row 1, column x, raw abc, expected integer", p)
	}
	if p.Kind != ProblemCellParse || p.Severity != SeverityWarning {
		t.Errorf("problem = %+v, want cell-parse warning", p)
	}

	col := table.Column("x").(*IntegerColumn)
	if !col.IsMissing(1) {
		t.Error("failed cell should be typed-missing")
	}
	if table.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2 (a bad cell never drops a row)", table.NumRows())
	}
}

func TestApply_PadSpecs(t *testing.T) {
	raw, err := Parse("a,b,c\n1,x,y\n", DefaultReadOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// One declared spec; the remaining columns default to character.
	table, problems := Apply(raw, []ColumnSpec{{Name: "a", Type: TypeInteger}}, TypeOptions{})
	if problems.Len() != 0 {
		t.Fatalf("problems = %v, want none", problems.Records())
	}

	wantTypes := []ColumnType{TypeInteger, TypeCharacter, TypeCharacter}
	for i, c := range table.Columns {
		if c.Spec().Type != wantTypes[i] {
			t.Errorf("column %d is %s, want %s", i, c.Spec().Type, wantTypes[i])
		}
	}
}

func TestApply_FactorColumns(t *testing.T) {
	raw, err := Parse("carrier\nAA\nUA\nXX\nAA\n", DefaultReadOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	t.Run("declared levels are closed", func(t *testing.T) {
		specs := []ColumnSpec{{Name: "carrier", Type: TypeFactor, Levels: []string{"AA", "UA"}}}
		table, problems := Apply(raw, specs, TypeOptions{})

		col := table.Column("carrier").(*FactorColumn)
		if !col.IsMissing(2) {
			t.Error("out-of-level cell should be typed-missing")
		}
		if col.Level(0) != "AA" || col.Level(1) != "UA" || col.Level(3) != "AA" {
			t.Errorf("levels = %q %q %q, want AA UA AA", col.Level(0), col.Level(1), col.Level(3))
		}
		if problems.Len() != 1 {
			t.Fatalf("problems = %v, want 1", problems.Records())
		}
		if p := problems.Records()[0]; p.Raw != "XX" || p.Row != 2 {
			t.Errorf("problem = %+v, want raw XX at row 2", p)
		}
	})

	t.Run("open factor collects levels", func(t *testing.T) {
		specs := []ColumnSpec{{Name: "carrier", Type: TypeFactor}}
		table, problems := Apply(raw, specs, TypeOptions{})

		col := table.Column("carrier").(*FactorColumn)
		if problems.Len() != 0 {
			t.Fatalf("problems = %v, want none", problems.Records())
		}
		wantLevels := []string{"AA", "UA", "XX"}
		if !reflect.DeepEqual(col.Spec().Levels, wantLevels) {
			t.Errorf("Levels = %v, want %v", col.Spec().Levels, wantLevels)
		}
		if col.Codes[3].Int32 != 0 {
			t.Errorf("repeated level code = %d, want 0", col.Codes[3].Int32)
		}
	})
}

// ----------------------------------------------------------------------------
// ReinferStrings
// ----------------------------------------------------------------------------

func TestReinferStrings(t *testing.T) {
	// First pass declares everything character; the re-inference pass
	// recovers the natural types without touching missing cells.
	declared := TypeOptions{
		ColumnTypes: map[string]ColumnSpec{
			"n": {Type: TypeCharacter},
			"d": {Type: TypeCharacter},
		},
	}
	table, _, err := ReadTable("n,d\n1,2013-06-15\nNA,2014-01-01\n", DefaultReadOptions(), declared)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	retyped, problems, err := ReinferStrings(table, TypeOptions{})
	if err != nil {
		t.Fatalf("ReinferStrings() error = %v", err)
	}
	if problems.Len() != 0 {
		t.Fatalf("problems = %v, want none", problems.Records())
	}

	n := retyped.Column("n").(*IntegerColumn)
	if n.Values[0].Int64 != 1 {
		t.Errorf("n[0] = %+v, want 1", n.Values[0])
	}
	if !n.IsMissing(1) {
		t.Error("n[1] should stay typed-missing through re-inference")
	}
	if retyped.Column("d").Spec().Type != TypeDate {
		t.Errorf("d is %s, want date", retyped.Column("d").Spec().Type)
	}
}

func TestReinferStrings_RejectsTypedColumns(t *testing.T) {
	table, _, err := ReadTable("x\n1\n", DefaultReadOptions(), TypeOptions{})
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if _, _, err := ReinferStrings(table, TypeOptions{}); err == nil {
		t.Fatal("ReinferStrings() expected error for non-character column")
	}
}

func TestReinferStrings_Idempotent(t *testing.T) {
	// Re-inferring an already-inferred table's string form lands on the
	// same column types.
	src := "a,b,c\n1,2.5,TRUE\n2,3.5,FALSE\n"
	table, _, err := ReadTable(src, DefaultReadOptions(), TypeOptions{
		ColumnTypes: map[string]ColumnSpec{
			"a": {Type: TypeCharacter},
			"b": {Type: TypeCharacter},
			"c": {Type: TypeCharacter},
		},
	})
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	once, _, err := ReinferStrings(table, TypeOptions{})
	if err != nil {
		t.Fatalf("ReinferStrings() error = %v", err)
	}

	wantTypes := []ColumnType{TypeInteger, TypeDouble, TypeLogical}
	for i, c := range once.Columns {
		if c.Spec().Type != wantTypes[i] {
			t.Errorf("column %d is %s, want %s", i, c.Spec().Type, wantTypes[i])
		}
	}
}
