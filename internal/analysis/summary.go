package analysis

import (
	"log"
	"time"

	"crimescope/domain/incident"
	"crimescope/internal/profiling"

	"gonum.org/v1/gonum/floats"
)

// Summary is everything a run reports about one normalized table
type Summary struct {
	Rows               int                      `json:"rows"`
	SourceRows         int                      `json:"source_rows"`
	DroppedRows        int                      `json:"dropped_rows"`
	Columns            incident.ResolvedColumns `json:"columns"`
	FirstDate          *time.Time               `json:"first_date,omitempty"`
	LastDate           *time.Time               `json:"last_date,omitempty"`
	DistinctCategories int                      `json:"distinct_categories"`
	DistinctAreas      int                      `json:"distinct_areas,omitempty"`

	TopK          int                   `json:"topk"`
	Monthly       incident.CountSeries  `json:"monthly"`
	TopCategories incident.CountSeries  `json:"top_categories"`
	Areas         *incident.CountSeries `json:"areas,omitempty"`

	// Shape of the monthly series; nil for an empty table
	MonthlyProfile *profiling.SeriesProfile `json:"monthly_profile,omitempty"`
	PeakMonth      *incident.CountEntry     `json:"peak_month,omitempty"`
	UnusualMonths  []string                 `json:"unusual_months,omitempty"`
	TopShare       float64                  `json:"top_share"` // fraction of rows covered by the top categories
}

// Summarize aggregates a normalized table into the monthly and top-k series
// plus descriptive statistics of the monthly volume.
func Summarize(table *incident.NormalizedTable, topK int) (*Summary, error) {
	top, err := TopCategories(table, topK)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Rows:               table.Len(),
		SourceRows:         table.SourceRows,
		DroppedRows:        table.DroppedRows,
		Columns:            table.Columns,
		DistinctCategories: table.DistinctCategories(),
		TopK:               topK,
		Monthly:            MonthlyVolume(table),
		TopCategories:      top,
	}

	if first, last, ok := table.DateRange(); ok {
		summary.FirstDate = &first
		summary.LastDate = &last
	}

	if areas, ok := AreaCounts(table); ok {
		summary.Areas = &areas
		summary.DistinctAreas = areas.Len()
	}

	if summary.Rows > 0 {
		summary.TopShare = floats.Sum(top.Values()) / float64(summary.Rows)
	}

	if summary.Monthly.Len() > 0 {
		profile, err := profiling.NewDistributionAnalyzer().AnalyzeSeries(summary.Monthly.Values())
		if err != nil {
			log.Printf("[Summary] Failed to profile monthly series: %v", err)
		} else {
			summary.MonthlyProfile = &profile
			for _, i := range profile.Outliers {
				summary.UnusualMonths = append(summary.UnusualMonths, summary.Monthly.Entries[i].Key)
			}
		}
		summary.PeakMonth = peak(summary.Monthly)
	}

	return summary, nil
}

// peak returns the first entry with the highest count
func peak(series incident.CountSeries) *incident.CountEntry {
	if series.Len() == 0 {
		return nil
	}
	best := series.Entries[0]
	for _, e := range series.Entries[1:] {
		if e.Count > best.Count {
			best = e
		}
	}
	return &best
}
