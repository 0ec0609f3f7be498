package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

func fixture() *dataset.Dataset {
	return &dataset.Dataset{
		Path:   "snmptn_all.xlsx",
		Sheets: []string{"2021", "2022"},
		Records: []dataset.Record{
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "X", Quota: dataset.Some(10), Applicants: dataset.Some(100)},
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "Y", Quota: dataset.Some(5), Applicants: dataset.Some(20)},
			{Year: "2022", Regency: "Kota Malang", Province: "Jawa Timur", Level: "D3", Institution: "B", Program: "X", Quota: dataset.Some(8), Applicants: dataset.Some(0)},
		},
	}
}

// newTestServer returns a server over the fixture and a counter of loads.
func newTestServer(t *testing.T) (*Server, *atomic.Int32) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var loads atomic.Int32
	cache := dataset.NewCacheWithLoader("snmptn_all.xlsx", dataset.Columns{}, func(string, dataset.Columns) (*dataset.Dataset, error) {
		loads.Add(1)
		return fixture(), nil
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cache, Options{Logger: logger, Columns: dataset.DefaultColumns()}), &loads
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestKPIs_Scenario(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/kpis?year=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[kpiResponse](t, rec)
	assert.Equal(t, int64(120), got.KPIs.TotalApplicants)
	assert.Equal(t, int64(15), got.KPIs.TotalQuota)
	assert.Equal(t, "1:13", got.KPIs.Ratio)
	assert.Equal(t, 2, got.KPIs.Rows)
	require.Len(t, got.Metrics, 3)
}

func TestKPIs_RepeatedDimensionParams(t *testing.T) {
	s, _ := newTestServer(t)
	got := decode[kpiResponse](t, do(t, s, http.MethodGet, "/api/kpis?tahun=2021&tahun=2022"))
	assert.Equal(t, 3, got.KPIs.Rows)
	assert.Equal(t, int64(23), got.KPIs.TotalQuota)
}

func TestTop(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/top?year=2021&key=institution&measure=quota&n=1")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[topResponse](t, rec)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "A", got.Groups[0].Key)
	assert.Equal(t, int64(15), got.Groups[0].Value)
}

func TestTop_Defaults(t *testing.T) {
	s, _ := newTestServer(t)
	got := decode[topResponse](t, do(t, s, http.MethodGet, "/api/top"))
	assert.Equal(t, "institution", got.Key)
	assert.Equal(t, "quota", got.Measure)
	assert.Equal(t, 10, got.N)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "A", got.Groups[0].Key)
}

func TestErrorMapping(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"unknown dimension", "/api/kpis?faculty=x", http.StatusBadRequest},
		{"dimension not on page", "/api/kpis?page=by-major&year=2021", http.StatusBadRequest},
		{"unknown page", "/api/kpis?page=sidebar", http.StatusBadRequest},
		{"bad n", "/api/top?n=-1", http.StatusBadRequest},
		{"unknown key column", "/api/top?key=faculty", http.StatusUnprocessableEntity},
		{"unknown measure", "/api/top?measure=seats", http.StatusUnprocessableEntity},
		{"unknown chart format", "/api/charts/quota-by-year.gif", http.StatusBadRequest},
		{"unknown section", "/api/charts/churn.svg", http.StatusNotFound},
		{"section not on page", "/api/charts/trend.svg?page=by-major", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			got := decode[errorResponse](t, rec)
			assert.NotEmpty(t, got.Error)
			assert.NotEmpty(t, got.RequestID)
		})
	}
}

func TestLoadErrorIsUnavailable(t *testing.T) {
	cache := dataset.NewCacheWithLoader("missing.xlsx", dataset.Columns{}, func(p string, _ dataset.Columns) (*dataset.Dataset, error) {
		return nil, &dataset.LoadError{Path: p, Err: errors.New("no such file")}
	})
	s := New(cache, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	rec := do(t, s, http.MethodGet, "/api/kpis")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing.xlsx")

	rec = do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":false`)
}

func TestOptions_ExcludeOwnSelection(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/options?institution=A")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Dimension string   `json:"dimension"`
		Values    []string `json:"values"`
		Selected  []string `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 6)
	byDim := make(map[string][]string)
	for _, o := range got {
		byDim[o.Dimension] = o.Values
	}
	assert.Equal(t, []string{"A", "B"}, byDim["institution"])
	assert.Equal(t, []string{"2021"}, byDim["year"])
}

func TestRows(t *testing.T) {
	s, _ := newTestServer(t)

	got := decode[rowsResponse](t, do(t, s, http.MethodGet, "/api/rows?limit=2"))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Returned)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, dataset.Some(100), got.Rows[0].Applicants)

	none := decode[rowsResponse](t, do(t, s, http.MethodGet, "/api/rows?year=1999"))
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Rows)

	all := decode[rowsResponse](t, do(t, s, http.MethodGet, "/api/rows?limit=0"))
	assert.Equal(t, 3, all.Returned)
}

func TestRows_XLSX(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/rows?format=xlsx&province=Jawa+Timur")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rec = do(t, s, http.MethodGet, "/api/rows?format=csv")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/charts/quota-by-year.svg")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(t, s, http.MethodGet, "/api/charts/quota-by-level.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])
}

func TestChart_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	// The kpi section has no chart.
	rec := do(t, s, http.MethodGet, "/api/charts/kpi.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No rows in view skips the section.
	rec = do(t, s, http.MethodGet, "/api/charts/top-quota-institutions.svg?year=1999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/?page=by-major&program=x")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Program Studi X")
	assert.Contains(t, body, `<form method="get"`)
	assert.Contains(t, body, `<option value="by-major" selected>by-major</option>`)
}

func TestReport_Formats(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/report?year=2021&sections=kpi")
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "overview", res["page"])
	assert.EqualValues(t, 2, res["view_rows"])

	rec = do(t, s, http.MethodGet, "/api/report?format=markdown")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# Dashboard Admisi Perguruan Tinggi"))

	rec = do(t, s, http.MethodGet, "/api/report?format=dir")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReload(t *testing.T) {
	s, loads := newTestServer(t)

	do(t, s, http.MethodGet, "/api/kpis")
	do(t, s, http.MethodGet, "/api/kpis")
	assert.Equal(t, int32(1), loads.Load(), "dataset is read once")

	rec := do(t, s, http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[reloadResponse](t, rec)
	assert.Equal(t, 3, got.Rows)
	assert.Equal(t, int32(2), loads.Load())

	rec = do(t, s, http.MethodGet, "/api/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	cache := dataset.NewCacheWithLoader("x.xlsx", dataset.Columns{}, func(string, dataset.Columns) (*dataset.Dataset, error) {
		return fixture(), nil
	})
	s := New(cache, Options{Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	do(t, s, http.MethodGet, "/api/kpis?faculty=x")
	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/kpis")
	assert.Contains(t, out, "status=400")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
	assert.Equal(t, http.StatusNotFound, statusFor(errNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&dataset.SchemaError{Column: "x"}))
}
