package profiling

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSeries(t *testing.T) {
	data := []float64{10, 12, 11, 13, 12, 90}

	profile, err := NewDistributionAnalyzer().AnalyzeSeries(data)
	require.NoError(t, err)

	assert.Equal(t, 6, profile.N)
	assert.Equal(t, 148.0, profile.Total)
	assert.InDelta(t, 148.0/6, profile.Mean, 1e-9)
	assert.Equal(t, 12.0, profile.Median)
	assert.Equal(t, 10.0, profile.Min)
	assert.Equal(t, 90.0, profile.Max)
	assert.Greater(t, profile.StdDev, 0.0)
	assert.Greater(t, profile.Skewness, 0.0, "one large month skews right")
	assert.Equal(t, []int{5}, profile.Outliers)
	assert.LessOrEqual(t, profile.Q25, profile.Median)
	assert.GreaterOrEqual(t, profile.Q75, profile.Median)
}

func TestAnalyzeSeriesShortInputs(t *testing.T) {
	analyzer := NewDistributionAnalyzer()

	profile, err := analyzer.AnalyzeSeries([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, profile.Mean)
	assert.Equal(t, 0.0, profile.StdDev)
	assert.Equal(t, 0.0, profile.CV)
	assert.Empty(t, profile.Outliers)

	profile, err = analyzer.AnalyzeSeries([]float64{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, profile.StdDev)
	assert.Equal(t, 0.0, profile.Skewness)
}

func TestAnalyzeSeriesEmpty(t *testing.T) {
	profile, err := NewDistributionAnalyzer().AnalyzeSeries(nil)
	assert.ErrorIs(t, err, stats.EmptyInputErr)
	assert.Equal(t, 0, profile.N)
}
