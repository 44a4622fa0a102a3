package tabular

// infer.go implements sample-based column type inference. Candidates are
// tried most specific first and the first one matching every sampled
// non-missing value wins, so no two candidates can tie. The candidate
// order is:
//
//	logical -> integer -> [number, with a caller-supplied locale]
//	-> double -> date -> time -> datetime -> character
//
// The formatted-number candidate is only offered when TypeOptions.Locale
// is non-nil: auto-detecting among number locales would be guessing the
// caller's intent, so an explicit locale is required.

import "github.com/JonMunkholm/tabular/internal/logging"

// Infer examines up to SampleSize leading values of each column and
// returns one ColumnSpec per column in table order. Columns declared in
// TypeOptions.ColumnTypes bypass inference. Columns whose whole sample
// matched a missing marker default to character and yield a low-severity
// AmbiguousInference advisory in the second return value.
func Infer(raw *RawTable, opts TypeOptions) ([]ColumnSpec, []Problem) {
	specs := make([]ColumnSpec, raw.NumCols())
	var advisories []Problem

	for c, name := range raw.Names {
		if declared, ok := opts.ColumnTypes[name]; ok {
			declared.Name = name
			specs[c] = declared
			continue
		}

		sample := sampleColumn(raw, c, opts)
		if len(sample) == 0 {
			specs[c] = ColumnSpec{Name: name, Type: TypeCharacter}
			advisories = append(advisories, Problem{
				Row:      -1,
				Column:   name,
				Expected: TypeCharacter.String(),
				Reason:   "inference ambiguous: all sampled values missing",
				Kind:     ProblemAmbiguousInference,
				Severity: SeverityAdvisory,
			})
			continue
		}

		specs[c] = ColumnSpec{Name: name, Type: guessType(sample, opts.Locale)}
	}

	if opts.Logger != nil {
		logging.Columns(opts.Logger, specNames(specs))
	}
	return specs, advisories
}

// sampleColumn collects up to SampleSize leading non-missing values of
// column c.
func sampleColumn(raw *RawTable, c int, opts TypeOptions) []string {
	limit := opts.sampleSize()
	var sample []string
	for _, row := range raw.Rows {
		if len(sample) >= limit {
			break
		}
		if opts.isMissing(row[c]) {
			continue
		}
		sample = append(sample, row[c])
	}
	return sample
}

// guessType returns the most specific type matching every sampled value.
func guessType(sample []string, loc *Locale) ColumnType {
	for _, cand := range candidateTypes(loc) {
		matched := true
		for _, v := range sample {
			if !matchesType(v, cand, loc) {
				matched = false
				break
			}
		}
		if matched {
			return cand
		}
	}
	return TypeCharacter
}

// candidateTypes returns the inference order. Factor and character are
// absent: factors are declare-only, and character is the fallback.
func candidateTypes(loc *Locale) []ColumnType {
	if loc != nil {
		return []ColumnType{
			TypeLogical, TypeInteger, TypeNumber, TypeDouble,
			TypeDate, TypeTime, TypeTimestamp,
		}
	}
	return []ColumnType{
		TypeLogical, TypeInteger, TypeDouble,
		TypeDate, TypeTime, TypeTimestamp,
	}
}

// matchesType reports whether one value parses under a candidate's
// grammar. This is the same grammar Apply uses, so inference and parsing
// can never disagree about a value.
func matchesType(v string, t ColumnType, loc *Locale) bool {
	switch t {
	case TypeLogical:
		return parseLogical(v).Valid
	case TypeInteger:
		return parseInteger(v).Valid
	case TypeNumber:
		return parseNumber(v, loc).Valid
	case TypeDouble:
		return parseDouble(v).Valid
	case TypeDate:
		return parseDate(v, "", loc).Valid
	case TypeTime:
		return parseClock(v, "", loc).Valid
	case TypeTimestamp:
		return parseTimestamp(v, "", loc).Valid
	default:
		return true
	}
}

func specNames(specs []ColumnSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name + ":" + s.Type.String()
	}
	return out
}
