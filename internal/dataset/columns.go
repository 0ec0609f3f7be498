package dataset

import "strings"

// Columns maps record fields to spreadsheet header names. Header matching is
// case-insensitive and ignores surrounding whitespace.
type Columns struct {
	Year        string `yaml:"year,omitempty" json:"year"`
	Regency     string `yaml:"regency,omitempty" json:"regency"`
	Province    string `yaml:"province,omitempty" json:"province"`
	Level       string `yaml:"level,omitempty" json:"level"`
	Institution string `yaml:"institution,omitempty" json:"institution"`
	Program     string `yaml:"program,omitempty" json:"program"`
	Applicants  string `yaml:"applicants,omitempty" json:"applicants"`
	Quota       string `yaml:"quota,omitempty" json:"quota"`
}

// DefaultColumns returns the header names used by the SNMPTN workbooks.
func DefaultColumns() Columns {
	return Columns{
		Year:        "tahun",
		Regency:     "kabupaten/kota",
		Province:    "provinsi",
		Level:       "jenjang",
		Institution: "nama_univ",
		Program:     "nama_prodi",
		Applicants:  "peminat",
		Quota:       "daya_tampung",
	}
}

// WithDefaults fills empty names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Year == "" {
		c.Year = d.Year
	}
	if c.Regency == "" {
		c.Regency = d.Regency
	}
	if c.Province == "" {
		c.Province = d.Province
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Institution == "" {
		c.Institution = d.Institution
	}
	if c.Program == "" {
		c.Program = d.Program
	}
	if c.Applicants == "" {
		c.Applicants = d.Applicants
	}
	if c.Quota == "" {
		c.Quota = d.Quota
	}
	return c
}

// Header returns the header row in record field order.
func (c Columns) Header() []string {
	return []string{c.Year, c.Regency, c.Province, c.Level, c.Institution, c.Program, c.Applicants, c.Quota}
}

// columnIndex holds the position of each field within a sheet's header.
type columnIndex struct {
	year, regency, province, level, institution, program, applicants, quota int
}

// resolve locates every configured column in header. The first missing
// column is reported as a SchemaError.
func (c Columns) resolve(sheet string, header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := headerKey(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	var idx columnIndex
	targets := []struct {
		name string
		dst  *int
	}{
		{c.Year, &idx.year},
		{c.Regency, &idx.regency},
		{c.Province, &idx.province},
		{c.Level, &idx.level},
		{c.Institution, &idx.institution},
		{c.Program, &idx.program},
		{c.Applicants, &idx.applicants},
		{c.Quota, &idx.quota},
	}
	for _, t := range targets {
		i, ok := pos[headerKey(t.name)]
		if !ok {
			return idx, &SchemaError{Column: t.name, Sheet: sheet}
		}
		*t.dst = i
	}
	return idx, nil
}

func headerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
