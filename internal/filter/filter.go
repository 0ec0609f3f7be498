// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package filter narrows admissions records along categorical dimensions.
//
// Selections combine with AND across dimensions and OR within one
// dimension; a dimension with no selected values imposes no restriction.
// Candidate option lists are "dynamic": each dimension's options come from
// rows matching every other dimension's selection, never its own, so
// picking a value can never lock a user out of the rest of that list.
package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Filter evaluates Specs over a fixed, ordered set of dimensions.
type Filter struct {
	dims []dataset.Dimension
}

// DimensionOptions lists the candidate values for one dimension.
type DimensionOptions struct {
	Dimension dataset.Dimension `json:"dimension"`
	Values    []string          `json:"values"`
	Selected  []string          `json:"selected,omitempty"`
}

// New builds a Filter over the named dimensions, in the given order. Names
// may be canonical ("province") or spreadsheet aliases ("provinsi").
// Unknown or repeated names are a *dataset.ConfigError.
func New(names ...string) (*Filter, error) {
	if len(names) == 0 {
		return nil, &dataset.ConfigError{Field: "dimensions", Message: "at least one dimension is required"}
	}
	seen := make(map[dataset.Dimension]bool, len(names))
	dims := make([]dataset.Dimension, 0, len(names))
	for _, name := range names {
		d, ok := dataset.ParseDimension(name)
		if !ok {
			return nil, &dataset.ConfigError{
				Field:   "dimensions",
				Message: fmt.Sprintf("unknown dimension %q (available: %s)", name, dimensionList()),
			}
		}
		if seen[d] {
			return nil, &dataset.ConfigError{Field: "dimensions", Message: fmt.Sprintf("dimension %q listed twice", name)}
		}
		seen[d] = true
		dims = append(dims, d)
	}
	return &Filter{dims: dims}, nil
}

// Dimensions returns the configured dimensions in order.
func (f *Filter) Dimensions() []dataset.Dimension {
	out := make([]dataset.Dimension, len(f.dims))
	copy(out, f.dims)
	return out
}

// Has reports whether d is one of the filter's dimensions.
func (f *Filter) Has(d dataset.Dimension) bool {
	for _, x := range f.dims {
		if x == d {
			return true
		}
	}
	return false
}

// Validate checks that spec only selects on configured dimensions.
func (f *Filter) Validate(spec Spec) error {
	for d, vals := range spec {
		if len(vals) == 0 {
			continue
		}
		if !f.Has(d) {
			return &dataset.ConfigError{
				Field:   string(d),
				Message: "dimension is not enabled for this page",
			}
		}
	}
	return nil
}

// Apply returns the records matching spec on every configured dimension.
// When nothing is selected the input slice itself is returned; callers must
// treat every returned slice as read-only.
func (f *Filter) Apply(records []dataset.Record, spec Spec) []dataset.Record {
	return f.apply(records, spec, "")
}

// Options returns, for each configured dimension, the sorted distinct values
// present in rows that satisfy the selections on all OTHER dimensions.
func (f *Filter) Options(records []dataset.Record, spec Spec) []DimensionOptions {
	out := make([]DimensionOptions, 0, len(f.dims))
	for _, d := range f.dims {
		scoped := f.apply(records, spec, d)
		seen := make(map[string]bool)
		var values []string
		for _, r := range scoped {
			// Keyed like the matcher in apply; the first spelling wins.
			v := r.Dimension(d)
			key := strings.ToLower(v)
			if v == "" || seen[key] {
				continue
			}
			seen[key] = true
			values = append(values, v)
		}
		sortValues(values)
		if values == nil {
			values = []string{}
		}
		out = append(out, DimensionOptions{
			Dimension: d,
			Values:    values,
			Selected:  spec.Values(d),
		})
	}
	return out
}

// apply filters records by every configured dimension except skip.
func (f *Filter) apply(records []dataset.Record, spec Spec, skip dataset.Dimension) []dataset.Record {
	type constraint struct {
		dim dataset.Dimension
		set map[string]bool
	}
	var cons []constraint
	for _, d := range f.dims {
		if d == skip {
			continue
		}
		vals := spec.Values(d)
		if len(vals) == 0 {
			continue
		}
		cons = append(cons, constraint{dim: d, set: lowerSet(vals)})
	}
	if len(cons) == 0 {
		return records
	}

	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		pass := true
		for _, c := range cons {
			if !c.set[strings.ToLower(r.Dimension(c.dim))] {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}

func lowerSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[strings.ToLower(v)] = true
	}
	return set
}

// sortValues orders numerically when every value is a number (years),
// otherwise case-insensitively.
func sortValues(values []string) {
	numeric := len(values) > 0
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		sort.SliceStable(values, func(i, j int) bool {
			a, _ := strconv.ParseFloat(values[i], 64)
			b, _ := strconv.ParseFloat(values[j], 64)
			return a < b
		})
		return
	}
	sort.SliceStable(values, func(i, j int) bool {
		li, lj := strings.ToLower(values[i]), strings.ToLower(values[j])
		if li != lj {
			return li < lj
		}
		return values[i] < values[j]
	})
}

func dimensionList() string {
	names := make([]string, 0, len(dataset.AllDimensions()))
	for _, d := range dataset.AllDimensions() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}
