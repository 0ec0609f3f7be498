package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Spec is a user's current selection: dimension → allowed values.
// A missing or empty entry means "no restriction".
type Spec map[dataset.Dimension][]string

// Values returns the selection for d, or nil.
func (s Spec) Values(d dataset.Dimension) []string {
	if s == nil {
		return nil
	}
	return s[d]
}

// IsEmpty reports whether no dimension has a selection.
func (s Spec) IsEmpty() bool {
	for _, v := range s {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s Spec) Clone() Spec {
	out := make(Spec, len(s))
	for d, v := range s {
		out[d] = append([]string(nil), v...)
	}
	return out
}

// String renders the selection in sorted dimension order, e.g. "province=Jawa Barat;year=2021,2022".
func (s Spec) String() string {
	dims := make([]string, 0, len(s))
	for d, v := range s {
		if len(v) > 0 {
			dims = append(dims, string(d))
		}
	}
	sort.Strings(dims)
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, d+"="+strings.Join(s[dataset.Dimension(d)], ","))
	}
	return strings.Join(parts, ";")
}

// ParseSpec builds a Spec from raw name → values input such as URL query
// parameters or repeated CLI flags. Values are taken verbatim since program
// names may contain commas. Blank values and the keyword "all" are dropped.
// Unknown dimension names are a *dataset.ConfigError.
func ParseSpec(raw map[string][]string) (Spec, error) {
	spec := make(Spec)
	for name, vals := range raw {
		d, ok := dataset.ParseDimension(name)
		if !ok {
			return nil, &dataset.ConfigError{
				Field:   name,
				Message: fmt.Sprintf("unknown dimension (available: %s)", dimensionList()),
			}
		}
		for _, v := range vals {
			v = strings.TrimSpace(v)
			if v == "" || strings.EqualFold(v, "all") {
				continue
			}
			spec[d] = appendUnique(spec[d], v)
		}
	}
	return spec, nil
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return list
		}
	}
	return append(list, v)
}
