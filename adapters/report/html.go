package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"crimescope/adapters/chart"
	"crimescope/domain/incident"
	"crimescope/internal/dataset"
	"crimescope/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTMLReportFile is the report's name inside the output directory
const HTMLReportFile = "report.html"

// WriteHTML renders the run as a standalone HTML page next to its charts
func WriteHTML(run *Run, store *dataset.ArtifactStore) (string, error) {
	title := "Incident report: " + filepath.Base(run.Source)
	page := RenderHTML(title, Markdown(run))

	path, err := store.StoreBytes(HTMLReportFile, page)
	if err != nil {
		return "", errors.RenderFailed(HTMLReportFile, err)
	}
	return path, nil
}

// RenderHTML converts markdown to a complete HTML page
func RenderHTML(title string, md []byte) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

// Markdown builds the report body
func Markdown(run *Run) []byte {
	p := newPrinter()
	s := run.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "# Incident report: %s\n\n", escape(filepath.Base(run.Source)))
	fmt.Fprintf(&b, "- Run: `%s`\n", run.ID)
	fmt.Fprintf(&b, "- Source: `%s` (%s, sha256 `%s`)\n", run.Source, run.Format, run.Fingerprint.Short())
	b.WriteString(p.Sprintf("- Rows: %d", s.Rows))
	if s.DroppedRows > 0 {
		b.WriteString(p.Sprintf(" (%d dropped for unparseable dates)", s.DroppedRows))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Date range: %s\n", run.DateRange())
	fmt.Fprintf(&b, "- Columns: %s\n\n", escape(describeColumns(run)))

	b.WriteString("## Incidents per Month\n\n")
	if hasChart(run, chart.MonthlyChartFile) {
		fmt.Fprintf(&b, "![Incidents per Month](%s)\n\n", chart.MonthlyChartFile)
	}
	writeSeriesTable(&b, "Month", s.Monthly, s.Rows)
	if prof := s.MonthlyProfile; prof != nil {
		b.WriteString(p.Sprintf("Mean %.1f, median %.1f, standard deviation %.1f incidents per month.", prof.Mean, prof.Median, prof.StdDev))
		if s.PeakMonth != nil {
			b.WriteString(p.Sprintf(" Peak: %s with %d.", s.PeakMonth.Key, s.PeakMonth.Count))
		}
		b.WriteString("\n\n")
	}
	if len(s.UnusualMonths) > 0 {
		fmt.Fprintf(&b, "Unusual months: %s\n\n", strings.Join(s.UnusualMonths, ", "))
	}

	fmt.Fprintf(&b, "## Top %d Incident Categories\n\n", s.TopK)
	if hasChart(run, chart.CategoryChartFile) {
		fmt.Fprintf(&b, "![Top %d Incident Categories](%s)\n\n", s.TopK, chart.CategoryChartFile)
	}
	writeSeriesTable(&b, "Category", s.TopCategories, s.Rows)
	b.WriteString(p.Sprintf("These categories account for %.1f%% of all incidents (%d distinct categories).\n\n", s.TopShare*100, s.DistinctCategories))

	if s.Areas != nil {
		b.WriteString("## Incidents by Area\n\n")
		writeSeriesTable(&b, "Area", *s.Areas, s.Rows)
	}

	return []byte(b.String())
}

func writeSeriesTable(b *strings.Builder, keyHeader string, series incident.CountSeries, total int) {
	if series.Len() == 0 {
		b.WriteString("No incidents.\n\n")
		return
	}
	p := newPrinter()
	fmt.Fprintf(b, "| %s | Count | Share |\n|---|---:|---:|\n", keyHeader)
	for _, e := range series.Entries {
		key := e.Key
		if key == "" {
			key = "(blank)"
		}
		share := 0.0
		if total > 0 {
			share = float64(e.Count) / float64(total) * 100
		}
		b.WriteString(p.Sprintf("| %s | %d | %.1f%% |\n", escape(key), e.Count, share))
	}
	b.WriteString("\n")
}

func hasChart(run *Run, name string) bool {
	for _, c := range run.Charts {
		if c == name {
			return true
		}
	}
	return false
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

// escape keeps dataset labels from being read as markdown
func escape(s string) string {
	return markdownEscaper.Replace(s)
}
