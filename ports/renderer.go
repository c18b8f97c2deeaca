package ports

import (
	"crimescope/domain/incident"
)

// ChartRenderer draws count series as image artifacts and returns the written paths
type ChartRenderer interface {
	RenderMonthly(series incident.CountSeries) (string, error)
	RenderTopCategories(series incident.CountSeries, k int) (string, error)
}
