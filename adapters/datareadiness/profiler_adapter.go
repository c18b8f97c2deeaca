package datareadiness

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"crimescope/adapters/datareadiness/coercer"
	"crimescope/domain/incident"
)

// InferredType is the most likely kind of value a column holds
type InferredType string

const (
	TypeTimestamp   InferredType = "timestamp"
	TypeNumeric     InferredType = "numeric"
	TypeBoolean     InferredType = "boolean"
	TypeCategorical InferredType = "categorical"
	TypeText        InferredType = "text"
	TypeUnknown     InferredType = "unknown"
)

// ColumnProfile describes one raw column
type ColumnProfile struct {
	Name          string       `json:"name"`
	SampleSize    int          `json:"sample_size"`
	MissingCount  int          `json:"missing_count"`
	InferredType  InferredType `json:"inferred_type"`
	DateShare     float64      `json:"date_share"` // share of present values that parse as dates
	DistinctCount int          `json:"distinct_count"`
	Mode          string       `json:"mode,omitempty"`
	ModeFrequency int          `json:"mode_frequency,omitempty"`
	QualityScore  float64      `json:"quality_score"`
}

// DefaultSampleSize bounds how many rows are inspected per column
const DefaultSampleSize = 1000

// ProfilerAdapter profiles the columns of a raw table
type ProfilerAdapter struct {
	coercer    *coercer.TypeCoercer
	sampleSize int
}

// NewProfilerAdapter creates a profiler; a nil coercer uses the default date layouts
func NewProfilerAdapter(typeCoercer *coercer.TypeCoercer, sampleSize int) *ProfilerAdapter {
	if typeCoercer == nil {
		typeCoercer = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &ProfilerAdapter{coercer: typeCoercer, sampleSize: sampleSize}
}

// ProfileTable profiles every column in header order using the leading rows
func (p *ProfilerAdapter) ProfileTable(table *incident.RawTable) []ColumnProfile {
	sample := table.Records
	if len(sample) > p.sampleSize {
		sample = sample[:p.sampleSize]
	}

	profiles := make([]ColumnProfile, len(table.Columns))
	for i, column := range table.Columns {
		profiles[i] = p.profileColumn(column, sample)
	}
	return profiles
}

// SuggestDateColumns returns columns whose values mostly parse as dates, best first
func SuggestDateColumns(profiles []ColumnProfile, minShare float64) []string {
	var candidates []ColumnProfile
	for _, profile := range profiles {
		if profile.InferredType == TypeTimestamp && profile.DateShare >= minShare {
			candidates = append(candidates, profile)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DateShare > candidates[j].DateShare
	})

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// profileColumn analyzes a single column across the sampled rows
func (p *ProfilerAdapter) profileColumn(column string, records []incident.RawRecord) ColumnProfile {
	profile := ColumnProfile{Name: column, SampleSize: len(records)}

	var values []interface{}
	for _, record := range records {
		value := record[column]
		if _, ok := p.coercer.CoerceText(value); !ok {
			profile.MissingCount++
			continue
		}
		values = append(values, value)
	}

	dates := 0
	for _, value := range values {
		if _, ok := p.coercer.CoerceTimestamp(value); ok {
			dates++
		}
	}
	if len(values) > 0 {
		profile.DateShare = float64(dates) / float64(len(values))
	}

	profile.InferredType = p.inferType(values, profile.DateShare)
	profile.DistinctCount, profile.Mode, profile.ModeFrequency = p.computeFrequencies(values)
	profile.QualityScore = p.computeQualityScore(profile.MissingCount, profile.SampleSize)

	return profile
}

// inferType determines the most likely data type from a sample of values.
// Numbers win over timestamps because bare years parse as dates.
func (p *ProfilerAdapter) inferType(values []interface{}, dateShare float64) InferredType {
	if len(values) == 0 {
		return TypeUnknown
	}

	numericCount := 0
	boolCount := 0

	for _, value := range values {
		switch v := value.(type) {
		case int, int32, int64, float32, float64:
			numericCount++
		case bool:
			boolCount++
		case string:
			str := strings.ToLower(strings.TrimSpace(v))
			if str == "true" || str == "false" {
				boolCount++
			} else if _, err := strconv.ParseFloat(str, 64); err == nil {
				numericCount++
			}
		}
	}

	total := float64(len(values))
	if float64(numericCount)/total > 0.8 {
		return TypeNumeric
	}
	if float64(boolCount)/total > 0.8 {
		return TypeBoolean
	}
	if dateShare >= 0.9 {
		return TypeTimestamp
	}

	distinct, _, _ := p.computeFrequencies(values)
	if float64(distinct)/total <= 0.5 {
		return TypeCategorical
	}
	return TypeText
}

// computeQualityScore calculates an overall quality score
func (p *ProfilerAdapter) computeQualityScore(missingCount, totalCount int) float64 {
	if totalCount == 0 {
		return 0.0
	}

	completeness := 1.0 - float64(missingCount)/float64(totalCount)

	// Simple quality score based on completeness
	return math.Max(0.0, completeness)
}

// computeFrequencies counts distinct values and finds the mode; ties go to the first seen
func (p *ProfilerAdapter) computeFrequencies(values []interface{}) (distinct int, mode string, modeFreq int) {
	freq := make(map[string]int)
	var order []string
	for _, value := range values {
		str := p.coercer.ToString(value)
		if _, seen := freq[str]; !seen {
			order = append(order, str)
		}
		freq[str]++
	}

	for _, value := range order {
		if freq[value] > modeFreq {
			mode = value
			modeFreq = freq[value]
		}
	}

	return len(freq), mode, modeFreq
}
