package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"crimescope/adapters/datareadiness"
	"crimescope/adapters/report"
	"crimescope/domain/core"
	"crimescope/internal/analysis"
	"crimescope/internal/dataset"
	"crimescope/internal/errors"
	"crimescope/ports"
)

// ReportService runs the explorer pipeline: locate, load, normalize,
// aggregate, summarize and render.
type ReportService struct {
	loader     ports.TableLoader
	normalizer *dataset.Normalizer
	profiler   *datareadiness.ProfilerAdapter
	renderer   ports.ChartRenderer
	store      *dataset.ArtifactStore
	out        io.Writer
}

// minSuggestedDateShare is how much of a column must parse as dates before it is suggested
const minSuggestedDateShare = 0.9

// ReportRequest defines inputs for one run
type ReportRequest struct {
	SourcePath    string // may be empty; falls back to DefaultSource
	DefaultSource string
	TopK          int
	JSONPath      string // optional run summary destination
	HTMLReport    bool
}

// ReportResult contains the run and every file written
type ReportResult struct {
	Run       *report.Run
	Charts    []string
	JSONPath  string
	HTMLPath  string
	RuntimeMs int64
}

// NewReportService creates a report service that prints its summary to out
func NewReportService(loader ports.TableLoader, normalizer *dataset.Normalizer, renderer ports.ChartRenderer, store *dataset.ArtifactStore, out io.Writer) *ReportService {
	return &ReportService{
		loader:     loader,
		normalizer: normalizer,
		profiler:   datareadiness.NewProfilerAdapter(nil, datareadiness.DefaultSampleSize),
		renderer:   renderer,
		store:      store,
		out:        out,
	}
}

// Run executes the pipeline. Source and schema failures abort before any
// output is produced.
func (s *ReportService) Run(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()

	path, err := dataset.LocateSource(req.SourcePath, req.DefaultSource)
	if err != nil {
		return nil, err
	}
	log.Printf("[ReportService] Run %s using source %s", runID, path)

	raw, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	table, err := s.normalizer.Normalize(raw)
	if err != nil {
		if errors.HasCode(err, errors.CodeMissingRequiredField) {
			err = errors.WithHint(err, dateColumnHint(s.profiler.ProfileTable(raw)))
		}
		return nil, err
	}

	summary, err := analysis.Summarize(table, req.TopK)
	if err != nil {
		return nil, err
	}

	run := &report.Run{
		ID:          runID,
		GeneratedAt: time.Now().UTC(),
		Source:      path,
		Format:      raw.Format,
		Fingerprint: raw.Fingerprint,
		Summary:     summary,
		Profiles:    s.profiler.ProfileTable(raw),
	}
	result := &ReportResult{Run: run}

	if err := report.WriteConsole(s.out, run); err != nil {
		return nil, fmt.Errorf("failed to print summary: %w", err)
	}

	monthlyPath, err := s.renderer.RenderMonthly(summary.Monthly)
	if err != nil {
		return nil, err
	}
	categoryPath, err := s.renderer.RenderTopCategories(summary.TopCategories, req.TopK)
	if err != nil {
		return nil, err
	}
	result.Charts = []string{monthlyPath, categoryPath}
	for _, chart := range result.Charts {
		run.Charts = append(run.Charts, filepath.Base(chart))
	}
	fmt.Fprintf(s.out, "Wrote: %s and %s\n", monthlyPath, categoryPath)

	if req.JSONPath != "" {
		written, err := report.WriteJSON(run, req.JSONPath)
		if err != nil {
			return nil, err
		}
		result.JSONPath = written
		fmt.Fprintf(s.out, "Wrote: %s\n", written)
	}

	if req.HTMLReport {
		written, err := report.WriteHTML(run, s.store)
		if err != nil {
			return nil, err
		}
		result.HTMLPath = written
		fmt.Fprintf(s.out, "Wrote: %s\n", written)
	}

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	log.Printf("[ReportService] Run %s completed in %dms", runID, result.RuntimeMs)

	return result, nil
}

// dateColumnHint names the columns that look like dates so the user can pass one explicitly
func dateColumnHint(profiles []datareadiness.ColumnProfile) string {
	suggestions := datareadiness.SuggestDateColumns(profiles, minSuggestedDateShare)
	if len(suggestions) == 0 {
		return ""
	}
	log.Printf("[ReportService] Date-like columns: %s", strings.Join(suggestions, ", "))
	return fmt.Sprintf("Column %q looks like a date; rerun with --date-column %q", suggestions[0], suggestions[0])
}
