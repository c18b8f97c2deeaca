package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// IncidentGeneratorConfig configures the synthetic incident data generator
type IncidentGeneratorConfig struct {
	Rows            int       `json:"rows"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Seed            uint64    `json:"seed"`
	Categories      []string  `json:"categories"`
	Areas           []string  `json:"areas"`             // empty means no area column
	UnparseableRate float64   `json:"unparseable_rate"`  // share of rows with a garbage date
	MixedDateFormat bool      `json:"mixed_date_format"` // alternate ISO and US date layouts
	DateColumn      string    `json:"date_column"`
	CategoryColumn  string    `json:"category_column"` // empty means no category column
	AreaColumn      string    `json:"area_column"`
}

// DefaultIncidentConfig mirrors a small civic crime export
func DefaultIncidentConfig() IncidentGeneratorConfig {
	return IncidentGeneratorConfig{
		Rows:      1000,
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		Seed:      42,
		Categories: []string{
			"Theft", "Assault", "Burglary", "Vandalism", "Motor Vehicle Theft",
			"Robbery", "Fraud", "Narcotics", "Trespass", "Arson",
			"Weapons Violation", "Public Intoxication",
		},
		Areas:           []string{"Central", "Northside", "Eastside", "Southside", "West End"},
		UnparseableRate: 0.01,
		MixedDateFormat: true,
		DateColumn:      "occurred_at",
		CategoryColumn:  "offense_type",
		AreaColumn:      "district",
	}
}

// IncidentDataGenerator produces deterministic incident tables for a given seed
type IncidentDataGenerator struct {
	config IncidentGeneratorConfig
	faker  *gofakeit.Faker
}

// NewIncidentDataGenerator creates a new incident data generator
func NewIncidentDataGenerator(config IncidentGeneratorConfig) *IncidentDataGenerator {
	return &IncidentDataGenerator{
		config: config,
		faker:  gofakeit.New(config.Seed),
	}
}

// Header returns the generated column names
func (g *IncidentDataGenerator) Header() []string {
	header := []string{"case_id", g.config.DateColumn}
	if g.config.CategoryColumn != "" {
		header = append(header, g.config.CategoryColumn)
	}
	if g.config.AreaColumn != "" && len(g.config.Areas) > 0 {
		header = append(header, g.config.AreaColumn)
	}
	return append(header, "address")
}

// GenerateRows produces Rows records aligned with Header
func (g *IncidentDataGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		row := []string{fmt.Sprintf("INC-%06d", i+1), g.dateCell(i)}
		if g.config.CategoryColumn != "" {
			row = append(row, g.pickSkewed(g.config.Categories))
		}
		if g.config.AreaColumn != "" && len(g.config.Areas) > 0 {
			row = append(row, g.faker.RandomString(g.config.Areas))
		}
		row = append(row, g.faker.Street())
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the header and generated rows
func (g *IncidentDataGenerator) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(g.Header()); err != nil {
		return err
	}
	if err := writer.WriteAll(g.GenerateRows()); err != nil {
		return err
	}
	return writer.Error()
}

// WriteToFile writes a CSV file, creating parent directories
func (g *IncidentDataGenerator) WriteToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := g.WriteCSV(file); err != nil {
		return fmt.Errorf("failed to write incidents: %w", err)
	}
	return file.Close()
}

func (g *IncidentDataGenerator) dateCell(i int) string {
	if g.config.UnparseableRate > 0 && g.faker.Float64() < g.config.UnparseableRate {
		return g.faker.RandomString([]string{"", "N/A", "unknown", "00/00/0000"})
	}
	when := g.faker.DateRange(g.config.StartDate, g.config.EndDate).UTC()
	if g.config.MixedDateFormat && i%2 == 1 {
		return when.Format("1/2/2006 3:04:05 PM")
	}
	return when.Format("2006-01-02T15:04:05")
}

// pickSkewed favours earlier entries so category counts differ
func (g *IncidentDataGenerator) pickSkewed(values []string) string {
	if len(values) == 0 {
		return ""
	}
	a := g.faker.IntRange(0, len(values)-1)
	b := g.faker.IntRange(0, len(values)-1)
	if b < a {
		a = b
	}
	return values[a]
}
