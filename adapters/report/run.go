package report

import (
	"time"

	"crimescope/adapters/datareadiness"
	"crimescope/domain/core"
	"crimescope/internal/analysis"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Run describes one completed explorer run, the input to every report format
type Run struct {
	ID          core.RunID        `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Source      string            `json:"source"`
	Format      string            `json:"format"`
	Fingerprint core.Hash         `json:"fingerprint"`
	Summary     *analysis.Summary `json:"summary"`
	Charts      []string          `json:"charts,omitempty"` // file names relative to the output directory

	Profiles []datareadiness.ColumnProfile `json:"columns,omitempty"`
}

// DateRange renders the first and last incident dates, or "n/a" for an empty table
func (r *Run) DateRange() string {
	if r.Summary == nil || r.Summary.FirstDate == nil || r.Summary.LastDate == nil {
		return "n/a"
	}
	return r.Summary.FirstDate.Format(core.DateLayout) + " → " + r.Summary.LastDate.Format(core.DateLayout)
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}
