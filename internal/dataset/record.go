// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package dataset loads admissions workbooks into typed records and owns the
// process-wide read-once copy of the data.
package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Dimension names a categorical column usable as a filter axis.
type Dimension string

// Known dimensions, in the default sidebar order.
const (
	DimYear        Dimension = "year"
	DimRegency     Dimension = "regency"
	DimProvince    Dimension = "province"
	DimLevel       Dimension = "level"
	DimInstitution Dimension = "institution"
	DimProgram     Dimension = "program"
)

// Measure names a numeric column that can be summed.
type Measure string

// Known measures.
const (
	MeasureApplicants Measure = "applicants"
	MeasureQuota      Measure = "quota"
)

// AllDimensions returns every known dimension in sidebar order.
func AllDimensions() []Dimension {
	return []Dimension{DimYear, DimRegency, DimProvince, DimLevel, DimInstitution, DimProgram}
}

// AllMeasures returns every known measure.
func AllMeasures() []Measure {
	return []Measure{MeasureApplicants, MeasureQuota}
}

// dimensionAliases maps the spreadsheet's own column names onto dimensions
// so callers may use either vocabulary.
var dimensionAliases = map[string]Dimension{
	"tahun":          DimYear,
	"kabupaten/kota": DimRegency,
	"kabupaten":      DimRegency,
	"kota":           DimRegency,
	"provinsi":       DimProvince,
	"jenjang":        DimLevel,
	"nama_univ":      DimInstitution,
	"univ":           DimInstitution,
	"nama_prodi":     DimProgram,
	"prodi":          DimProgram,
}

var measureAliases = map[string]Measure{
	"peminat":      MeasureApplicants,
	"daya_tampung": MeasureQuota,
	"kuota":        MeasureQuota,
}

// ParseDimension resolves a dimension by canonical name or spreadsheet alias.
func ParseDimension(name string) (Dimension, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range AllDimensions() {
		if string(d) == key {
			return d, true
		}
	}
	d, ok := dimensionAliases[key]
	return d, ok
}

// ParseMeasure resolves a measure by canonical name or spreadsheet alias.
func ParseMeasure(name string) (Measure, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range AllMeasures() {
		if string(m) == key {
			return m, true
		}
	}
	m, ok := measureAliases[key]
	return m, ok
}

// Count is a nullable non-negative integer cell. Absent counts are excluded
// from sums rather than treated as zero.
type Count struct {
	Value int64
	Valid bool
}

// Some returns a present Count.
func Some(v int64) Count { return Count{Value: v, Valid: true} }

// String renders the count, or an empty string when absent.
func (c Count) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatInt(c.Value, 10)
}

// MarshalJSON encodes absent counts as null.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON decodes null as an absent count.
func (c *Count) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Count{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Some(v)
	return nil
}

// Record is one admissions-cycle row.
type Record struct {
	Year        string `json:"year"`
	Regency     string `json:"regency"`
	Province    string `json:"province"`
	Level       string `json:"level"`
	Institution string `json:"institution"`
	Program     string `json:"program"`
	Applicants  Count  `json:"applicants"`
	Quota       Count  `json:"quota"`
}

// Dimension returns the value of a categorical field.
func (r Record) Dimension(d Dimension) string {
	switch d {
	case DimYear:
		return r.Year
	case DimRegency:
		return r.Regency
	case DimProvince:
		return r.Province
	case DimLevel:
		return r.Level
	case DimInstitution:
		return r.Institution
	case DimProgram:
		return r.Program
	}
	return ""
}

// Measure returns the value of a numeric field.
func (r Record) Measure(m Measure) Count {
	switch m {
	case MeasureApplicants:
		return r.Applicants
	case MeasureQuota:
		return r.Quota
	}
	return Count{}
}

// RowError records a row rejected during load.
type RowError struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"` // 1-based, as shown in the spreadsheet
	Reason string `json:"reason"`
}

// Dataset is the concatenation of every sheet of one workbook. It is not
// modified after Load returns; derived views are new slices.
type Dataset struct {
	Path     string     `json:"path"`
	Sheets   []string   `json:"sheets"`
	Records  []Record   `json:"-"`
	Rejected []RowError `json:"rejected,omitempty"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Len returns the number of accepted records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
