package report

import (
	"fmt"
	"io"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/kpi"
)

func init() {
	Register(func() Section { return &kpiSection{} })
}

// kpiSection reports total applicants, total quota and their ratio.
type kpiSection struct {
	set kpi.Set
}

func (s *kpiSection) Name() string        { return "kpi" }
func (s *kpiSection) Description() string { return "Total applicants, total quota and quota ratio" }
func (s *kpiSection) Title() string       { return "KPI Metrics" }

// Analyze never skips: an empty view still has well-defined totals.
func (s *kpiSection) Analyze(v *View) error {
	s.set = kpi.Compute(v.Records)
	return nil
}

// KPIs returns the computed set.
func (s *kpiSection) KPIs() kpi.Set { return s.set }

func (s *kpiSection) table() *Table {
	tbl := NewTable(
		Column{Header: "Metric"},
		Column{Header: "Value", Align: AlignRight, Color: func(v string) string {
			if _, ok := ratioSeats(v); ok {
				return ColorRatio(v)
			}
			return ColorValue(v)
		}},
	)
	for _, m := range s.set.Display() {
		tbl.AddRow(m.Label, m.Value)
	}
	return tbl
}

func (s *kpiSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(s.Title()))
	_, _ = fmt.Fprintf(w, "-----------\n")
	if err := s.table().Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "  Rows in view: %s\n\n", kpi.FormatThousands(int64(s.set.Rows)))
	return nil
}

func (s *kpiSection) Table() ([]string, [][]string) { return s.table().Data() }
func (s *kpiSection) Chart() *chart.Spec            { return nil }
