package analysis

import (
	"sort"

	"crimescope/domain/core"
	"crimescope/domain/incident"
	"crimescope/internal/errors"
)

// Series names used in reports and JSON output
const (
	SeriesMonthly       = "incidents_by_month"
	SeriesTopCategories = "top_categories"
	SeriesAreas         = "incidents_by_area"
)

// MonthlyVolume counts incidents per calendar month, ascending by month.
// Months without incidents are not synthesized.
func MonthlyVolume(table *incident.NormalizedTable) incident.CountSeries {
	counts := make(map[core.Month]int)
	for _, row := range table.Rows {
		counts[core.MonthOf(row.Date)]++
	}

	months := make([]core.Month, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := incident.CountSeries{Name: SeriesMonthly, Entries: make([]incident.CountEntry, len(months))}
	for i, month := range months {
		series.Entries[i] = incident.CountEntry{Key: month.Key(), Count: counts[month]}
	}
	return series
}

// TopCategories returns the k most frequent categories, descending by count.
// Equal counts keep the order in which categories were first encountered.
func TopCategories(table *incident.NormalizedTable, k int) (incident.CountSeries, error) {
	if k <= 0 {
		return incident.CountSeries{}, errors.InvalidTopK(k)
	}

	series := countInEncounterOrder(table.Rows, func(row incident.Incident) (string, bool) {
		return row.Category, true
	})
	series.Name = SeriesTopCategories
	if len(series.Entries) > k {
		series.Entries = series.Entries[:k]
	}
	return series, nil
}

// AreaCounts counts incidents per area, descending by count. ok is false
// when the table has no area column.
func AreaCounts(table *incident.NormalizedTable) (incident.CountSeries, bool) {
	if !table.HasArea() {
		return incident.CountSeries{Name: SeriesAreas}, false
	}
	series := countInEncounterOrder(table.Rows, func(row incident.Incident) (string, bool) {
		return row.AreaOrEmpty(), row.HasArea()
	})
	series.Name = SeriesAreas
	return series, true
}

// countInEncounterOrder groups rows by key and sorts descending by count,
// stable with respect to first encounter.
func countInEncounterOrder(rows []incident.Incident, key func(incident.Incident) (string, bool)) incident.CountSeries {
	index := make(map[string]int)
	var entries []incident.CountEntry
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			entries[i].Count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, incident.CountEntry{Key: k, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	return incident.CountSeries{Entries: entries}
}
