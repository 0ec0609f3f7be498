package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/kpi"
	"github.com/admisi-dashboard/admisi/internal/output"
	"github.com/admisi-dashboard/admisi/internal/rank"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// DefaultRowLimit caps /api/rows when no limit is given.
const DefaultRowLimit = 100

// errNotFound marks a missing chart or section.
var errNotFound = errors.New("not found")

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.build(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := (&output.HTMLFormatter{Interactive: true}).Format(res, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	f, err := output.GetStreamFormatter(format)
	if err != nil {
		s.writeError(w, r, &dataset.ConfigError{Field: "format", Message: err.Error()})
		return
	}

	res, err := s.build(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := f.Format(res, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(buf.Bytes())
}

type kpiResponse struct {
	KPIs    kpi.Set      `json:"kpis"`
	Metrics []kpi.Metric `json:"metrics"`
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	sel, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	set := kpi.Compute(sel.records)
	writeJSON(w, http.StatusOK, kpiResponse{KPIs: set, Metrics: set.Display()})
}

type topResponse struct {
	Key     string       `json:"key"`
	Measure string       `json:"measure"`
	N       int          `json:"n"`
	Groups  []rank.Group `json:"groups"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	sel, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	values := r.URL.Query()
	key := values.Get("key")
	if key == "" {
		key = string(dataset.DimInstitution)
	}
	measure := values.Get("measure")
	if measure == "" {
		measure = string(dataset.MeasureQuota)
	}
	n, err := intParam(values, "n", topN(sel.q.topN))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	groups, err := rank.TopN(sel.records, key, measure, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topResponse{Key: key, Measure: measure, N: n, Groups: groups})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sel, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel.filter.Options(sel.ds.Records, sel.q.spec))
}

type rowsResponse struct {
	Total    int              `json:"total"`
	Returned int              `json:"returned"`
	Rows     []dataset.Record `json:"rows"`
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	sel, err := s.view(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view := sel.records

	values := r.URL.Query()
	switch values.Get("format") {
	case "xlsx":
		var buf bytes.Buffer
		if err := output.WriteWorkbook(&buf, view, s.opts.Columns); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+output.WorkbookFile+`"`)
		_, _ = w.Write(buf.Bytes())
		return
	case "", "json":
	default:
		s.writeError(w, r, &dataset.ConfigError{Field: "format", Message: "use json or xlsx"})
		return
	}

	limit, err := intParam(values, "limit", DefaultRowLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows := view
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []dataset.Record{}
	}
	writeJSON(w, http.StatusOK, rowsResponse{Total: len(view), Returned: len(rows), Rows: rows})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		s.writeError(w, r, &dataset.ConfigError{Field: "format", Message: err.Error()})
		return
	}

	ds, err := s.cache.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !slices.Contains(q.page.Sections, name) {
		s.writeError(w, r, fmt.Errorf("chart %s on page %s: %w", name, q.page.Name, errNotFound))
		return
	}
	opts := q.options()
	opts.Sections = []string{name}
	res, err := report.Build(ds, q.page, q.spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sec := res.Section(name)
	if sec == nil || sec.Status != report.StatusOK || sec.Chart == nil {
		s.writeError(w, r, fmt.Errorf("chart %s: %w", name, errNotFound))
		return
	}
	data, err := chart.RenderBytes(*sec.Chart, format)
	if errors.Is(err, chart.ErrNoData) {
		s.writeError(w, r, fmt.Errorf("chart %s: %w", name, errNotFound))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

type reloadResponse struct {
	Rows     int       `json:"rows"`
	Rejected int       `json:"rejected"`
	Sheets   []string  `json:"sheets"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.cache.Reload(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("dataset reloaded", "path", ds.Path, "rows", ds.Len())
	writeJSON(w, http.StatusOK, reloadResponse{
		Rows:     ds.Len(),
		Rejected: len(ds.Rejected),
		Sheets:   ds.Sheets,
		LoadedAt: ds.LoadedAt,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.cache.Loaded(),
		"data":   s.cache.Path(),
	})
}

// build runs the full report for the request's page and filters.
func (s *Server) build(r *http.Request) (*report.Result, error) {
	ds, err := s.cache.Get(r.Context())
	if err != nil {
		return nil, err
	}
	q, err := s.parseQuery(r)
	if err != nil {
		return nil, err
	}
	return report.Build(ds, q.page, q.spec, q.options())
}

// selection is a request's dataset narrowed to its page and filters.
type selection struct {
	ds      *dataset.Dataset
	q       query
	filter  *filter.Filter
	records []dataset.Record
}

// view returns the filtered records for the request's page and filters.
func (s *Server) view(r *http.Request) (selection, error) {
	ds, err := s.cache.Get(r.Context())
	if err != nil {
		return selection{}, err
	}
	q, err := s.parseQuery(r)
	if err != nil {
		return selection{}, err
	}
	records, f, err := q.page.Apply(ds.Records, q.spec)
	if err != nil {
		return selection{}, err
	}
	return selection{ds: ds, q: q, filter: f, records: records}, nil
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case dataset.IsConfigError(err):
		return http.StatusBadRequest
	case dataset.IsSchemaError(err):
		return http.StatusUnprocessableEntity
	case dataset.IsLoadError(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: r.Header.Get(RequestIDHeader)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "markdown":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func topN(n int) int {
	if n <= 0 {
		return report.DefaultTopN
	}
	return n
}
