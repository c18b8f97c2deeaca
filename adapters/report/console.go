package report

import (
	"io"
	"strings"
)

// WriteConsole prints the run summary: rows, date range and unique
// categories first, then column and monthly-volume details.
func WriteConsole(w io.Writer, run *Run) error {
	p := newPrinter()
	s := run.Summary

	lines := []string{
		p.Sprintf("Rows: %d", s.Rows),
		"Date range: " + run.DateRange(),
		p.Sprintf("Unique categories: %d", s.DistinctCategories),
	}

	if s.DroppedRows > 0 {
		lines = append(lines, p.Sprintf("Dropped rows (unparseable date): %d of %d", s.DroppedRows, s.SourceRows))
	}
	lines = append(lines, "Columns: "+describeColumns(run))
	if s.Areas != nil {
		lines = append(lines, p.Sprintf("Distinct areas: %d", s.DistinctAreas))
	}
	if s.PeakMonth != nil {
		lines = append(lines, p.Sprintf("Peak month: %s (%d)", s.PeakMonth.Key, s.PeakMonth.Count))
	}
	if prof := s.MonthlyProfile; prof != nil {
		lines = append(lines, p.Sprintf("Monthly incidents: mean %.1f, median %.1f, std dev %.1f", prof.Mean, prof.Median, prof.StdDev))
	}
	if len(s.UnusualMonths) > 0 {
		lines = append(lines, "Unusual months: "+strings.Join(s.UnusualMonths, ", "))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func describeColumns(run *Run) string {
	c := run.Summary.Columns
	parts := []string{"date=" + c.Date}
	if c.Category != "" {
		parts = append(parts, "category="+c.Category)
	} else {
		parts = append(parts, "category=(none)")
	}
	if c.Area != "" {
		parts = append(parts, "area="+c.Area)
	}
	return strings.Join(parts, ", ")
}
