package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// Query parameters that are not dimensions.
var reserved = map[string]bool{
	"page": true, "sections": true, "top": true, "split": true,
	"key": true, "measure": true, "n": true, "limit": true, "format": true,
}

// query is a parsed dashboard request.
type query struct {
	page     report.Page
	spec     filter.Spec
	sections []string
	topN     int
	split    bool
}

// parseQuery reads the page, the filter selection and report options from
// the URL. Every non-reserved parameter names a dimension and may repeat.
func (s *Server) parseQuery(r *http.Request) (query, error) {
	values := r.URL.Query()

	page, err := report.LookupPage(values.Get("page"))
	if err != nil {
		return query{}, err
	}

	dims := make(map[string][]string)
	for name, vals := range values {
		if reserved[name] {
			continue
		}
		dims[name] = vals
	}
	spec, err := filter.ParseSpec(dims)
	if err != nil {
		return query{}, err
	}

	q := query{page: page, spec: spec, topN: s.opts.TopN, split: s.opts.SplitTrend}
	if v := values.Get("top"); v != "" {
		if q.topN, err = positiveInt("top", v); err != nil {
			return query{}, err
		}
	}
	if v := values.Get("split"); v != "" {
		if q.split, err = strconv.ParseBool(v); err != nil {
			return query{}, &dataset.ConfigError{Field: "split", Message: fmt.Sprintf("not a boolean: %q", v)}
		}
	}
	if v := values.Get("sections"); v != "" {
		q.sections = strings.Split(v, ",")
	}
	return q, nil
}

// options converts the query to report build options.
func (q query) options() report.Options {
	return report.Options{Sections: q.sections, TopN: q.topN, SplitTrend: q.split}
}

// intParam reads an optional non-negative integer parameter.
func intParam(values url.Values, name string, def int) (int, error) {
	v := values.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &dataset.ConfigError{Field: name, Message: fmt.Sprintf("must be a non-negative integer, got %q", v)}
	}
	return n, nil
}

func positiveInt(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, &dataset.ConfigError{Field: name, Message: fmt.Sprintf("must be a positive integer, got %q", v)}
	}
	return n, nil
}
