package dataset

import (
	"crimescope/domain/incident"

	"golang.org/x/text/cases"
)

// ResolveColumn returns the table column matching the highest-priority candidate.
// Matching is case-insensitive using Unicode case folding; no other
// normalization is applied. The returned name keeps the table's casing.
// When several columns fold to the same key, the lexicographically smallest
// one is used so that the result never depends on column order.
func ResolveColumn(columns []string, candidates incident.CandidateList) (string, bool) {
	if len(columns) == 0 || len(candidates) == 0 {
		return "", false
	}

	fold := cases.Fold()
	byKey := make(map[string]string, len(columns))
	for _, col := range columns {
		key := fold.String(col)
		if existing, ok := byKey[key]; !ok || col < existing {
			byKey[key] = col
		}
	}

	for _, candidate := range candidates {
		if col, ok := byKey[fold.String(candidate)]; ok {
			return col, true
		}
	}
	return "", false
}

// ResolveColumns resolves every semantic field against the table header.
// An empty Date means the table cannot be normalized.
func ResolveColumns(columns []string, candidates incident.Candidates) incident.ResolvedColumns {
	var resolved incident.ResolvedColumns
	resolved.Date, _ = ResolveColumn(columns, candidates.Date)
	resolved.Category, _ = ResolveColumn(columns, candidates.Category)
	resolved.Area, _ = ResolveColumn(columns, candidates.Area)
	return resolved
}
