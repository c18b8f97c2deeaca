package analysis

import (
	"fmt"
	"testing"
	"time"

	"crimescope/domain/core"
	"crimescope/domain/incident"
	"crimescope/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func rowsOf(categories ...string) []incident.Incident {
	rows := make([]incident.Incident, len(categories))
	for i, c := range categories {
		rows[i] = incident.Incident{Date: day(2023, 1, 1), Category: c}
	}
	return rows
}

func TestMonthlyVolume(t *testing.T) {
	table := &incident.NormalizedTable{Rows: []incident.Incident{
		{Date: day(2023, 3, 31), Category: "Theft"},
		{Date: day(2022, 12, 1), Category: "Theft"},
		{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Arson"},
		{Date: day(2023, 1, 15), Category: "Fraud"},
	}}

	series := MonthlyVolume(table)

	assert.Equal(t, SeriesMonthly, series.Name)
	assert.Equal(t, []string{"2022-12", "2023-01", "2023-03"}, series.Keys(), "ascending, gaps not filled")
	assert.Equal(t, []float64{1, 1, 2}, series.Values())
	assert.Equal(t, table.Len(), series.Total())
}

func TestMonthlyVolumeSingleRow(t *testing.T) {
	table := &incident.NormalizedTable{Rows: []incident.Incident{
		{Date: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), Category: incident.UnknownCategory},
	}}

	series := MonthlyVolume(table)
	require.Equal(t, 1, series.Len())
	assert.Equal(t, incident.CountEntry{Key: "2023-01", Count: 1}, series.Entries[0])
}

func TestMonthlyVolumeUsesWallClockMonth(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	table := &incident.NormalizedTable{Rows: []incident.Incident{
		{Date: time.Date(2023, 1, 31, 22, 0, 0, 0, est), Category: "Theft"},
	}}

	series := MonthlyVolume(table)
	assert.Equal(t, []string{"2023-01"}, series.Keys())
}

func TestMonthlyVolumeKeysAreUniqueAndOrdered(t *testing.T) {
	var rows []incident.Incident
	for i := 0; i < 500; i++ {
		rows = append(rows, incident.Incident{
			Date:     day(2020+i%4, time.Month(1+(i*7)%12), 1+i%28),
			Category: "X",
		})
	}
	table := &incident.NormalizedTable{Rows: rows}

	series := MonthlyVolume(table)
	assert.Equal(t, len(rows), series.Total())

	seen := make(map[string]bool)
	for i, key := range series.Keys() {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
		if i > 0 {
			prev, err := core.ParseMonth(series.Entries[i-1].Key)
			require.NoError(t, err)
			cur, err := core.ParseMonth(key)
			require.NoError(t, err)
			assert.True(t, prev.Before(cur))
		}
	}
}

func TestTopCategories(t *testing.T) {
	// 15 categories with counts 1..15
	var categories []string
	for i := 1; i <= 15; i++ {
		for j := 0; j < i; j++ {
			categories = append(categories, fmt.Sprintf("cat-%02d", i))
		}
	}
	table := &incident.NormalizedTable{Rows: rowsOf(categories...)}

	series, err := TopCategories(table, 10)
	require.NoError(t, err)

	assert.Equal(t, SeriesTopCategories, series.Name)
	require.Equal(t, 10, series.Len())
	for i, entry := range series.Entries {
		assert.Equal(t, 15-i, entry.Count)
		assert.Equal(t, fmt.Sprintf("cat-%02d", 15-i), entry.Key)
	}
}

func TestTopCategoriesTiesKeepEncounterOrder(t *testing.T) {
	table := &incident.NormalizedTable{Rows: rowsOf("Fraud", "Arson", "Theft", "Arson", "Fraud", "Burglary")}

	series, err := TopCategories(table, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fraud", "Arson", "Theft", "Burglary"}, series.Keys())
	assert.Equal(t, []float64{2, 2, 1, 1}, series.Values())
}

func TestTopCategoriesFewerThanK(t *testing.T) {
	table := &incident.NormalizedTable{Rows: rowsOf("Theft", "Theft", "Arson")}

	series, err := TopCategories(table, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len(), "no padding")

	for _, key := range series.Keys() {
		assert.Contains(t, []string{"Theft", "Arson"}, key)
	}
}

func TestTopCategoriesRejectsNonPositiveK(t *testing.T) {
	table := &incident.NormalizedTable{Rows: rowsOf("Theft")}

	for _, k := range []int{0, -3} {
		_, err := TopCategories(table, k)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidTopK)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
	}
}

func TestAreaCounts(t *testing.T) {
	north, south, blank := "North", "South", ""
	table := &incident.NormalizedTable{
		Columns: incident.ResolvedColumns{Date: "date", Area: "district"},
		Rows: []incident.Incident{
			{Date: day(2023, 1, 1), Category: "A", Area: &south},
			{Date: day(2023, 1, 2), Category: "A", Area: &north},
			{Date: day(2023, 1, 3), Category: "A", Area: &north},
			{Date: day(2023, 1, 4), Category: "A", Area: &blank},
		},
	}

	series, ok := AreaCounts(table)
	require.True(t, ok)
	assert.Equal(t, []string{"North", "South", ""}, series.Keys())

	table.Columns.Area = ""
	_, ok = AreaCounts(table)
	assert.False(t, ok)
}
