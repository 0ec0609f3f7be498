// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/kpi"
	"github.com/admisi-dashboard/admisi/internal/rank"
)

func init() {
	Register(func() Section {
		return &rankedSection{
			name:    "quota-by-year",
			desc:    "Total quota per academic year",
			title:   "Jumlah Daya Tampung per Tahun",
			key:     dataset.DimYear,
			measure: dataset.MeasureQuota,
			all:     true,
			kind:    chart.KindBar,
		}
	})
	Register(func() Section {
		return &rankedSection{
			name:    "top-quota-institutions",
			desc:    "Institutions with the largest quota",
			title:   "Top %d Daya Tampung Tertinggi",
			key:     dataset.DimInstitution,
			measure: dataset.MeasureQuota,
			kind:    chart.KindBar,
		}
	})
	Register(func() Section {
		return &rankedSection{
			name:    "top-applicant-institutions",
			desc:    "Institutions with the most applicants",
			title:   "Top %d Peminat Tertinggi",
			key:     dataset.DimInstitution,
			measure: dataset.MeasureApplicants,
			kind:    chart.KindBar,
		}
	})
	Register(func() Section {
		return &rankedSection{
			name:    "top-applicant-programs",
			desc:    "Study programs with the most applicants",
			title:   "Top %d Prodi dengan Peminat Tertinggi",
			key:     dataset.DimProgram,
			measure: dataset.MeasureApplicants,
			kind:    chart.KindBar,
		}
	})
	Register(func() Section {
		return &rankedSection{
			name:    "quota-by-level",
			desc:    "Share of quota per education level",
			title:   "Persentase Daya Tampung tiap Jenjang",
			key:     dataset.DimLevel,
			measure: dataset.MeasureQuota,
			all:     true,
			kind:    chart.KindPie,
		}
	})
}

// rankedSection groups the view by one dimension and sums one measure.
// With all set it keeps every group (years in order, levels in first-seen
// order); otherwise it keeps the top N by value.
type rankedSection struct {
	name    string
	desc    string
	title   string // may contain one %d for N
	key     dataset.Dimension
	measure dataset.Measure
	all     bool
	kind    chart.Kind

	n      int
	total  int64
	groups []rank.Group
}

func (s *rankedSection) Name() string        { return s.name }
func (s *rankedSection) Description() string { return s.desc }

func (s *rankedSection) Title() string {
	if strings.Contains(s.title, "%d") {
		return fmt.Sprintf(s.title, s.n)
	}
	return s.title
}

func (s *rankedSection) Analyze(v *View) error {
	s.n = v.TopN
	if s.n <= 0 {
		s.n = DefaultTopN
	}
	if len(v.Records) == 0 {
		return fmt.Errorf("%s: no rows match the current filters: %w", s.name, ErrDataNotAvailable)
	}

	var err error
	if s.all {
		s.groups, err = rank.GroupBy(v.Records, string(s.key), string(s.measure))
		if s.key == dataset.DimYear {
			rank.SortByKey(s.groups)
		}
	} else {
		s.groups, err = rank.TopN(v.Records, string(s.key), string(s.measure), s.n)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}

	s.total = 0
	for _, g := range s.groups {
		s.total += g.Value
	}
	return nil
}

// Groups returns the analyzed groups in display order.
func (s *rankedSection) Groups() []rank.Group { return s.groups }

func (s *rankedSection) table() *Table {
	cols := []Column{
		{Header: keyHeader(s.key), MaxWidth: 48},
		{Header: measureHeader(s.measure), Align: AlignRight, Color: colorCount},
	}
	if s.kind == chart.KindPie {
		cols = append(cols, Column{Header: "Share", Align: AlignRight})
	}
	tbl := NewTable(cols...)
	for _, g := range s.groups {
		row := []string{displayKey(g.Key), kpi.FormatThousands(g.Value)}
		if s.kind == chart.KindPie {
			row = append(row, share(g.Value, s.total))
		}
		tbl.AddRow(row...)
	}
	return tbl
}

func (s *rankedSection) Render(w io.Writer) error {
	title := s.Title()
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(title))
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", len([]rune(title))))
	if err := s.table().Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func (s *rankedSection) Table() ([]string, [][]string) { return s.table().Data() }

func (s *rankedSection) Chart() *chart.Spec {
	groups := make([]rank.Group, len(s.groups))
	copy(groups, s.groups)
	for i := range groups {
		groups[i].Key = displayKey(groups[i].Key)
	}
	return &chart.Spec{
		Kind:   s.kind,
		Title:  s.Title(),
		XLabel: keyHeader(s.key),
		YLabel: measureHeader(s.measure),
		Series: []chart.Series{chart.FromGroups(string(s.measure), groups)},
	}
}

// DefaultTopN matches the dashboard's Top 10 charts.
const DefaultTopN = 10

func keyHeader(d dataset.Dimension) string {
	switch d {
	case dataset.DimYear:
		return "Tahun"
	case dataset.DimRegency:
		return "Kabupaten/Kota"
	case dataset.DimProvince:
		return "Provinsi"
	case dataset.DimLevel:
		return "Jenjang"
	case dataset.DimInstitution:
		return "Universitas"
	case dataset.DimProgram:
		return "Program Studi"
	}
	return string(d)
}

func measureHeader(m dataset.Measure) string {
	if m == dataset.MeasureApplicants {
		return "Peminat"
	}
	return "Daya Tampung"
}

// displayKey names the group of rows whose key cell was blank.
func displayKey(k string) string {
	if k == "" {
		return "(kosong)"
	}
	return k
}

func share(v, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(v)/float64(total)*100)
}
