package incident

import (
	"time"

	"crimescope/domain/core"
)

// RawRecord maps a dataset-defined column name to its raw cell value.
// Values are string, float64, bool, time.Time or nil depending on the source format.
type RawRecord map[string]interface{}

// RawTable is a source table exactly as loaded, before any column resolution.
type RawTable struct {
	Name        string      // Source path or label
	Format      string      // csv, xlsx or json
	Columns     []string    // Header in source order
	Records     []RawRecord // Data rows
	Fingerprint core.Hash   // SHA-256 of the source bytes
}

// NewRawTable builds a table from a header and positional rows, the shape
// CSV readers and tests produce. Rows shorter than the header leave the
// trailing columns missing; extra cells are ignored.
func NewRawTable(name string, columns []string, rows [][]string) *RawTable {
	table := &RawTable{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Records: make([]RawRecord, 0, len(rows)),
	}
	for _, row := range rows {
		record := make(RawRecord, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = row[i]
			} else {
				record[col] = nil
			}
		}
		table.Records = append(table.Records, record)
	}
	return table
}

// Len returns the number of data rows
func (t *RawTable) Len() int {
	return len(t.Records)
}

// Incident is one normalized row.
type Incident struct {
	Date     time.Time
	Category string
	Area     *string // nil when the dataset carries no area column
}

// HasArea reports whether the row carries an area value (possibly empty)
func (i Incident) HasArea() bool {
	return i.Area != nil
}

// AreaOrEmpty returns the area or "" when absent
func (i Incident) AreaOrEmpty() string {
	if i.Area == nil {
		return ""
	}
	return *i.Area
}

// ResolvedColumns records which source columns backed each semantic field.
// Empty strings mean the field was not resolved.
type ResolvedColumns struct {
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
	Area     string `json:"area,omitempty"`
}

// NormalizedTable is the schema-unified table: every row has a parseable
// date and a non-empty category, and either every row or no row has an area.
type NormalizedTable struct {
	Rows        []Incident
	Columns     ResolvedColumns
	SourceRows  int // rows in the raw table
	DroppedRows int // rows excluded because their date did not parse
}

// Len returns the number of normalized rows
func (t *NormalizedTable) Len() int {
	return len(t.Rows)
}

// HasArea reports whether an area column was resolved for this table
func (t *NormalizedTable) HasArea() bool {
	return t.Columns.Area != ""
}

// DateRange returns the earliest and latest incident dates; ok is false for an empty table
func (t *NormalizedTable) DateRange() (min, max time.Time, ok bool) {
	if len(t.Rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = t.Rows[0].Date, t.Rows[0].Date
	for _, row := range t.Rows[1:] {
		if row.Date.Before(min) {
			min = row.Date
		}
		if row.Date.After(max) {
			max = row.Date
		}
	}
	return min, max, true
}

// DistinctCategories counts unique category labels
func (t *NormalizedTable) DistinctCategories() int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		seen[row.Category] = struct{}{}
	}
	return len(seen)
}
