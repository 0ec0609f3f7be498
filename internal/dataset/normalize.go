package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase trims s, collapses inner whitespace, and title-cases each word.
// It is idempotent.
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Casers carry state; one per call keeps this safe for concurrent use.
	return cases.Title(language.Indonesian).String(s)
}

// Normalize returns a copy of ds with institution and program names
// title-cased so filter values match regardless of source casing.
// The input is not modified.
func Normalize(ds *Dataset) *Dataset {
	out := *ds
	out.Sheets = append([]string(nil), ds.Sheets...)
	out.Rejected = append([]RowError(nil), ds.Rejected...)
	out.Records = make([]Record, len(ds.Records))

	caser := cases.Title(language.Indonesian)
	for i, r := range ds.Records {
		r.Institution = titleWith(caser, r.Institution)
		r.Program = titleWith(caser, r.Program)
		out.Records[i] = r
	}
	return &out
}

// NormalizeTable applies the same title-casing to an untyped table. header
// names the columns of rows; the institution and program columns named in
// cols must be present or a SchemaError is returned. rows is not modified.
func NormalizeTable(header []string, rows [][]string, cols Columns) ([][]string, error) {
	cols = cols.WithDefaults()
	targets := make([]int, 0, 2)
	for _, name := range []string{cols.Institution, cols.Program} {
		found := -1
		for i, h := range header {
			if headerKey(h) == headerKey(name) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, &SchemaError{Column: name}
		}
		targets = append(targets, found)
	}

	caser := cases.Title(language.Indonesian)
	out := make([][]string, len(rows))
	for i, row := range rows {
		cp := append([]string(nil), row...)
		for _, t := range targets {
			if t < len(cp) {
				cp[t] = titleWith(caser, cp[t])
			}
		}
		out[i] = cp
	}
	return out, nil
}

func titleWith(c cases.Caser, s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return c.String(s)
}
