package align

import (
	"sort"
)

// Mapping translates source metric keys to canonical metric names. Multiple
// source keys may map to the same canonical name; during projection the
// last-applied source (in sorted key order) wins.
type Mapping map[string]string

// IdentityMapping maps every canonical metric name to itself, for sources
// that already log under the canonical scheme.
func IdentityMapping(canonical []string) Mapping {
	mapping := make(Mapping, len(canonical))
	for _, name := range canonical {
		mapping[name] = name
	}
	return mapping
}

// SourceKeys returns the mapping's source keys in sorted order.
func (m Mapping) SourceKeys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Project translates one table row into canonical names, including only
// canonical names whose source column holds a non-empty cell. Single cells
// project to their scalar; collided cells project to their value list.
func Project(row map[string]Cell, mapping Mapping) map[string]interface{} {
	projected := make(map[string]interface{})
	for _, source := range mapping.SourceKeys() {
		cell, ok := row[source]
		if !ok || cell.IsEmpty() {
			continue
		}
		if value, ok := cell.Value(); ok {
			projected[mapping[source]] = value
		} else {
			projected[mapping[source]] = cell.Values()
		}
	}
	return projected
}
