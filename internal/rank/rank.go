// Package rank groups records by a dimension and orders the groups by a
// summed measure.
package rank

import (
	"sort"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Group is one (label, sum) pair.
type Group struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
	// Rows is the number of records in the group, including those whose
	// measure was absent.
	Rows int `json:"rows"`
}

// GroupBy sums measure per distinct value of key, in first-seen order.
// Absent measure values are excluded from the sum. Key and measure accept
// canonical names or spreadsheet aliases; anything else is a
// *dataset.SchemaError.
func GroupBy(records []dataset.Record, key, measure string) ([]Group, error) {
	d, ok := dataset.ParseDimension(key)
	if !ok {
		return nil, &dataset.SchemaError{Column: key, Message: "unknown group-by column"}
	}
	m, ok := dataset.ParseMeasure(measure)
	if !ok {
		return nil, &dataset.SchemaError{Column: measure, Message: "unknown measure"}
	}
	return groupBy(records, d, m), nil
}

// Sum is GroupBy for callers that already hold a typed dimension and
// measure, so there is no name to reject.
func Sum(records []dataset.Record, d dataset.Dimension, m dataset.Measure) []Group {
	return groupBy(records, d, m)
}

// TopN returns the n groups with the largest sums, descending. Tied groups
// keep their first-seen order. n <= 0 yields an empty slice; n larger than
// the number of groups yields all of them.
func TopN(records []dataset.Record, key, measure string, n int) ([]Group, error) {
	groups, err := GroupBy(records, key, measure)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Group{}, nil
	}
	SortDesc(groups)
	if n < len(groups) {
		groups = groups[:n]
	}
	return groups, nil
}

// SortDesc orders groups by value, largest first, keeping the relative
// order of ties.
func SortDesc(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
}

// SortByKey orders groups by key, numerically when every key is an integer
// (years).
func SortByKey(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return keyLess(groups[i].Key, groups[j].Key)
	})
}

func groupBy(records []dataset.Record, d dataset.Dimension, m dataset.Measure) []Group {
	index := make(map[string]int)
	groups := []Group{}
	for _, r := range records {
		k := r.Dimension(d)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows++
		if c := r.Measure(m); c.Valid {
			groups[i].Value += c.Value
		}
	}
	return groups
}
