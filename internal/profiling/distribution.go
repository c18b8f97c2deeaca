package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesProfile summarizes the shape of a count series
type SeriesProfile struct {
	N        int     `json:"n"`
	Total    float64 `json:"total"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"` // sample standard deviation, 0 for fewer than two points
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	CV       float64 `json:"cv"` // coefficient of variation
	Outliers []int   `json:"outliers,omitempty"` // indexes outside the 1.5 IQR fences
}

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeSeries profiles a series of counts. An empty series yields a zero
// profile and stats.EmptyInputErr.
func (da *DistributionAnalyzer) AnalyzeSeries(data []float64) (SeriesProfile, error) {
	profile := SeriesProfile{N: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return profile, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return profile, err
	}

	// Quartiles for IQR-based outlier detection. stats.Percentile rejects
	// short inputs, so use gonum's empirical quantile on a sorted copy.
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	stdDev := 0.0
	if len(data) > 1 {
		stdDev = stat.StdDev(data, nil)
	}

	profile.Total = floats.Sum(data)
	profile.Mean = mean
	profile.Median = median
	profile.StdDev = stdDev
	profile.Min = min
	profile.Max = max
	profile.Q25 = q25
	profile.Q75 = q75
	profile.Skewness = calculateSkewness(data, mean, stdDev)
	if mean != 0 {
		profile.CV = stdDev / mean
	}
	profile.Outliers = detectOutliers(data, q25, q75)

	return profile, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0

	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// detectOutliers returns the indexes of values outside the IQR fences
func detectOutliers(data []float64, q25, q75 float64) []int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	var outliers []int
	for i, x := range data {
		if x < lowerBound || x > upperBound {
			outliers = append(outliers, i)
		}
	}

	return outliers
}
