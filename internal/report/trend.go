package report

import (
	"fmt"
	"io"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/kpi"
	"github.com/admisi-dashboard/admisi/internal/rank"
)

func init() {
	Register(func() Section { return &trendSection{} })
}

// trendSection reports applicants and quota over academic years, either as
// one combined pair of series or as one applicants series per level.
type trendSection struct {
	split  bool
	years  []string
	series []trendSeries
}

type trendSeries struct {
	name   string
	values map[string]int64 // year → sum
}

func (s *trendSection) Name() string        { return "trend" }
func (s *trendSection) Description() string { return "Applicants and quota over academic years" }

func (s *trendSection) Title() string {
	if s.split {
		return "Peminat tiap Jenjang per Tahun"
	}
	return "Peminat dan Daya Tampung per Tahun"
}

func (s *trendSection) Analyze(v *View) error {
	s.split = v.SplitTrend
	s.series = nil

	years := rank.Sum(v.Records, dataset.DimYear, dataset.MeasureApplicants)
	if len(years) < 2 {
		return fmt.Errorf("trend: need at least two years in view, have %d: %w", len(years), ErrDataNotAvailable)
	}
	rank.SortByKey(years)
	s.years = make([]string, len(years))
	for i, g := range years {
		s.years[i] = g.Key
	}

	if !s.split {
		quota := rank.Sum(v.Records, dataset.DimYear, dataset.MeasureQuota)
		s.series = []trendSeries{
			{name: "Peminat", values: groupMap(years)},
			{name: "Daya Tampung", values: groupMap(quota)},
		}
		return nil
	}

	byLevel := make(map[string][]dataset.Record)
	var levels []string
	for _, r := range v.Records {
		if _, ok := byLevel[r.Level]; !ok {
			levels = append(levels, r.Level)
		}
		byLevel[r.Level] = append(byLevel[r.Level], r)
	}
	for _, lvl := range levels {
		groups := rank.Sum(byLevel[lvl], dataset.DimYear, dataset.MeasureApplicants)
		s.series = append(s.series, trendSeries{name: displayKey(lvl), values: groupMap(groups)})
	}
	return nil
}

func groupMap(groups []rank.Group) map[string]int64 {
	m := make(map[string]int64, len(groups))
	for _, g := range groups {
		m[g.Key] = g.Value
	}
	return m
}

func (s *trendSection) table() *Table {
	cols := []Column{{Header: "Tahun"}}
	for _, ser := range s.series {
		cols = append(cols, Column{Header: ser.name, Align: AlignRight})
	}
	if !s.split {
		cols = append(cols, Column{Header: "Rasio", Align: AlignRight, Color: ColorRatio})
	}
	tbl := NewTable(cols...)
	for _, y := range s.years {
		row := []string{y}
		for _, ser := range s.series {
			row = append(row, kpi.FormatThousands(ser.values[y]))
		}
		if !s.split {
			row = append(row, kpi.Ratio(s.series[1].values[y], s.series[0].values[y]))
		}
		tbl.AddRow(row...)
	}
	return tbl
}

func (s *trendSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(s.Title()))
	_, _ = fmt.Fprintf(w, "----------------------------------\n")
	if err := s.table().Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func (s *trendSection) Table() ([]string, [][]string) { return s.table().Data() }

func (s *trendSection) Chart() *chart.Spec {
	spec := &chart.Spec{
		Kind:   chart.KindArea,
		Title:  s.Title(),
		XLabel: "Tahun",
		YLabel: "Jumlah",
	}
	for _, ser := range s.series {
		pts := make([]chart.Point, len(s.years))
		for i, y := range s.years {
			pts[i] = chart.Point{Label: y, Value: float64(ser.values[y])}
		}
		spec.Series = append(spec.Series, chart.Series{Name: ser.name, Points: pts})
	}
	return spec
}
