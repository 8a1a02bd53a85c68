package align

import (
	"sort"
)

// Alignment summarizes which canonical metrics a source can provide.
type Alignment struct {
	Present []string
	Missing []string
}

// Report computes the canonical names reachable via the mapping from the
// aligned columns, and the declared canonical names that are not. Pure
// computation; printing belongs to the caller.
func Report(columns []string, canonical []string, mapping Mapping) Alignment {
	available := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		available[column] = struct{}{}
	}

	present := make(map[string]struct{})
	for source, target := range mapping {
		if _, ok := available[source]; ok {
			present[target] = struct{}{}
		}
	}

	report := Alignment{
		Present: make([]string, 0, len(present)),
		Missing: make([]string, 0),
	}
	for _, name := range canonical {
		if _, ok := present[name]; ok {
			report.Present = append(report.Present, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}
	sort.Strings(report.Present)
	sort.Strings(report.Missing)
	return report
}
