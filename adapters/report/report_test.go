package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crimescope/adapters/chart"
	"crimescope/domain/core"
	"crimescope/domain/incident"
	"crimescope/internal/analysis"
	"crimescope/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(t *testing.T) *Run {
	t.Helper()
	area := "North"
	var rows []incident.Incident
	for i := 0; i < 12345; i++ {
		category := "Theft"
		if i%5 == 0 {
			category = "Assault | Battery"
		}
		rows = append(rows, incident.Incident{
			Date:     time.Date(2023, time.Month(1+i%3), 1+i%28, 0, 0, 0, 0, time.UTC),
			Category: category,
			Area:     &area,
		})
	}
	table := &incident.NormalizedTable{
		Rows:        rows,
		Columns:     incident.ResolvedColumns{Date: "occurred_at", Category: "offense_type", Area: "district"},
		SourceRows:  12347,
		DroppedRows: 2,
	}
	summary, err := analysis.Summarize(table, 10)
	require.NoError(t, err)

	return &Run{
		ID:          core.NewRunID(),
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Source:      "data/sample_crime.csv",
		Format:      "csv",
		Fingerprint: core.NewHash([]byte("abc")),
		Summary:     summary,
		Charts:      []string{chart.MonthlyChartFile, chart.CategoryChartFile},
	}
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleRun(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Rows: 12,345", lines[0])
	assert.Equal(t, "Date range: 2023-01-01 → 2023-03-28", lines[1])
	assert.Equal(t, "Unique categories: 2", lines[2])

	out := buf.String()
	assert.Contains(t, out, "Dropped rows (unparseable date): 2 of 12,347")
	assert.Contains(t, out, "Columns: date=occurred_at, category=offense_type, area=district")
	assert.Contains(t, out, "Distinct areas: 1")
	assert.Contains(t, out, "Peak month: 2023-01")
}

func TestWriteConsoleEmptyTable(t *testing.T) {
	summary, err := analysis.Summarize(&incident.NormalizedTable{Columns: incident.ResolvedColumns{Date: "date"}}, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, &Run{Summary: summary}))

	assert.Equal(t, "Rows: 0\nDate range: n/a\nUnique categories: 0\nColumns: date=date, category=(none)\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	run := sampleRun(t)
	path := filepath.Join(t.TempDir(), "nested", "summary.json")

	written, err := WriteJSON(run, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, run.ID.String(), decoded["run_id"])
	assert.Equal(t, run.Fingerprint.String(), decoded["fingerprint"])

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, 12345.0, summary["rows"])
	assert.Contains(t, summary, "monthly")
	assert.Contains(t, summary, "areas")
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleRun(t)))

	assert.Contains(t, md, "# Incident report: sample\\_crime.csv")
	assert.Contains(t, md, "![Incidents per Month](incidents_by_month.png)")
	assert.Contains(t, md, "## Top 10 Incident Categories")
	assert.Contains(t, md, `| Assault \| Battery |`)
	assert.Contains(t, md, "## Incidents by Area")
}

func TestMarkdownWithoutCharts(t *testing.T) {
	run := sampleRun(t)
	run.Charts = nil
	assert.NotContains(t, string(Markdown(run)), "![")
}

func TestWriteHTML(t *testing.T) {
	store := dataset.NewArtifactStore(t.TempDir())

	path, err := WriteHTML(sampleRun(t), store)
	require.NoError(t, err)
	assert.Equal(t, store.Path(HTMLReportFile), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(content)
	assert.Contains(t, page, "<title>Incident report: sample_crime.csv</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, `src="incidents_by_month.png"`)
	assert.Contains(t, page, "Assault")
}
