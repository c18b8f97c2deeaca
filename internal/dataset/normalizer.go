package dataset

import (
	"log"
	"time"

	"crimescope/adapters/datareadiness/coercer"
	"crimescope/domain/incident"
	"crimescope/internal/errors"
)

// Normalizer maps a raw table onto the canonical date/category/area schema
type Normalizer struct {
	candidates incident.Candidates
	coercer    *coercer.TypeCoercer
}

// NewNormalizer creates a normalizer; a nil coercer uses the default date layouts in UTC
func NewNormalizer(candidates incident.Candidates, typeCoercer *coercer.TypeCoercer) *Normalizer {
	if typeCoercer == nil {
		typeCoercer = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	return &Normalizer{candidates: candidates, coercer: typeCoercer}
}

// Normalize produces a new table in which every row has a parsed date and a
// category. Rows whose date cannot be parsed are dropped. A missing category
// column yields "Unknown" for every row; a missing area column leaves Area nil.
// It fails with MISSING_REQUIRED_FIELD when no date column resolves.
func (n *Normalizer) Normalize(table *incident.RawTable) (*incident.NormalizedTable, error) {
	if table == nil {
		return nil, errors.InvalidInput("no table to normalize")
	}

	columns := ResolveColumns(table.Columns, n.candidates)
	if columns.Date == "" {
		return nil, errors.MissingRequiredField(string(incident.FieldDate), n.candidates.Date)
	}

	log.Printf("[Normalizer] Resolved columns for %s: date=%q category=%q area=%q",
		table.Name, columns.Date, columns.Category, columns.Area)
	startTime := time.Now()

	result := &incident.NormalizedTable{
		Rows:       make([]incident.Incident, 0, table.Len()),
		Columns:    columns,
		SourceRows: table.Len(),
	}

	for _, record := range table.Records {
		date, ok := n.coercer.CoerceTimestamp(record[columns.Date])
		if !ok {
			result.DroppedRows++
			continue
		}

		row := incident.Incident{Date: date, Category: incident.UnknownCategory}
		if columns.Category != "" {
			if category, ok := n.coercer.CoerceText(record[columns.Category]); ok {
				row.Category = category
			}
		}
		if columns.Area != "" {
			area, _ := n.coercer.CoerceText(record[columns.Area])
			row.Area = &area
		}

		result.Rows = append(result.Rows, row)
	}

	log.Printf("[Normalizer] Normalized %d of %d rows in %.2fms (%d dropped for unparseable dates)",
		result.Len(), result.SourceRows, float64(time.Since(startTime).Nanoseconds())/1e6, result.DroppedRows)

	return result, nil
}
