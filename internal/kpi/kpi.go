// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package kpi computes the headline figures for a filtered view.
package kpi

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// ZeroRatio is reported when there are no applicants to divide by.
const ZeroRatio = "0"

// Display labels, in dashboard order.
const (
	LabelApplicants = "Total Peminat"
	LabelQuota      = "Total Kuota"
	LabelRatio      = "Rasio antara Kuota dan Peminat"
)

// Set holds the three KPIs of one view.
type Set struct {
	TotalApplicants int64  `json:"total_applicants"`
	TotalQuota      int64  `json:"total_quota"`
	Ratio           string `json:"ratio"`
	Rows            int    `json:"rows"`
}

// Metric is one labelled, display-ready KPI.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Compute sums applicants and quota over records and derives the ratio.
// Absent counts are left out of both sums.
func Compute(records []dataset.Record) Set {
	var s Set
	for _, r := range records {
		if r.Applicants.Valid {
			s.TotalApplicants += r.Applicants.Value
		}
		if r.Quota.Valid {
			s.TotalQuota += r.Quota.Value
		}
	}
	s.Rows = len(records)
	s.Ratio = Ratio(s.TotalQuota, s.TotalApplicants)
	return s
}

// Ratio formats quota per hundred applicants as "1:N", rounding half away
// from zero. It returns ZeroRatio when applicants is zero.
func Ratio(quota, applicants int64) string {
	if applicants == 0 {
		return ZeroRatio
	}
	n := math.Round(float64(quota) / float64(applicants) * 100)
	return "1:" + strconv.FormatInt(int64(n), 10)
}

// SumMeasure sums the named measure over records. Names may be canonical
// ("quota") or spreadsheet aliases ("daya_tampung"); anything else is a
// *dataset.SchemaError.
func SumMeasure(records []dataset.Record, name string) (int64, error) {
	m, ok := dataset.ParseMeasure(name)
	if !ok {
		return 0, &dataset.SchemaError{Column: name, Message: "unknown measure"}
	}
	var total int64
	for _, r := range records {
		if c := r.Measure(m); c.Valid {
			total += c.Value
		}
	}
	return total, nil
}

// Display returns the KPIs as labelled strings with "." thousands grouping.
func (s Set) Display() []Metric {
	return []Metric{
		{Label: LabelApplicants, Value: FormatThousands(s.TotalApplicants)},
		{Label: LabelQuota, Value: FormatThousands(s.TotalQuota)},
		{Label: LabelRatio, Value: s.Ratio},
	}
}

var printer = message.NewPrinter(language.Indonesian)

// FormatThousands renders n with "." as the grouping separator, e.g.
// 1234567 → "1.234.567".
func FormatThousands(n int64) string {
	return printer.Sprintf("%d", n)
}
