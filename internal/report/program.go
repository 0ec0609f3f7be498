package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/kpi"
)

func init() {
	Register(func() Section { return &programSection{} })
}

// programSection summarizes the study program(s) in view: which
// institutions offer them and at what competitiveness.
type programSection struct {
	programs []string
	rows     []programRow
}

type programRow struct {
	institution string
	program     string
	applicants  int64
	quota       int64
}

func (s *programSection) Name() string { return "program-summary" }
func (s *programSection) Description() string {
	return "Institutions offering the selected study program"
}

// Title follows the by-major page: "Program Studi" plus the first program in
// view.
func (s *programSection) Title() string {
	if len(s.programs) == 0 {
		return "Program Studi"
	}
	return "Program Studi " + s.programs[0]
}

func (s *programSection) Analyze(v *View) error {
	if len(v.Records) == 0 {
		return fmt.Errorf("program-summary: no rows match the current filters: %w", ErrDataNotAvailable)
	}

	s.programs = nil
	s.rows = nil
	seen := make(map[string]bool)
	index := make(map[[2]string]int)
	for _, r := range v.Records {
		if !seen[r.Program] {
			seen[r.Program] = true
			s.programs = append(s.programs, r.Program)
		}
		k := [2]string{r.Institution, r.Program}
		i, ok := index[k]
		if !ok {
			i = len(s.rows)
			index[k] = i
			s.rows = append(s.rows, programRow{institution: r.Institution, program: r.Program})
		}
		if r.Applicants.Valid {
			s.rows[i].applicants += r.Applicants.Value
		}
		if r.Quota.Valid {
			s.rows[i].quota += r.Quota.Value
		}
	}

	sort.SliceStable(s.rows, func(i, j int) bool {
		return s.rows[i].applicants > s.rows[j].applicants
	})
	return nil
}

// Programs returns the distinct programs in view, first-seen order.
func (s *programSection) Programs() []string { return s.programs }

func (s *programSection) table() *Table {
	tbl := NewTable(
		Column{Header: "Universitas", MaxWidth: 40},
		Column{Header: "Program Studi", MaxWidth: 40},
		Column{Header: "Peminat", Align: AlignRight},
		Column{Header: "Daya Tampung", Align: AlignRight},
		Column{Header: "Rasio", Align: AlignRight, Color: ColorRatio},
	)
	for _, r := range s.rows {
		tbl.AddRow(
			displayKey(r.institution),
			displayKey(r.program),
			kpi.FormatThousands(r.applicants),
			kpi.FormatThousands(r.quota),
			kpi.Ratio(r.quota, r.applicants),
		)
	}
	return tbl
}

func (s *programSection) Render(w io.Writer) error {
	title := s.Title()
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(title))
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", len([]rune(title))))
	if len(s.programs) > 1 {
		_, _ = fmt.Fprintf(w, "  %d programs in view\n", len(s.programs))
	}
	if err := s.table().Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func (s *programSection) Table() ([]string, [][]string) { return s.table().Data() }
func (s *programSection) Chart() *chart.Spec            { return nil }

// programHeading is the by-major page heading for a view.
func programHeading(records []dataset.Record) string {
	if len(records) == 0 {
		return ""
	}
	return "Program Studi " + records[0].Program
}
