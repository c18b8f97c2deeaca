package chart

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"time"

	"crimescope/domain/incident"
	"crimescope/internal/dataset"
	"crimescope/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Output file names inside the output directory
const (
	MonthlyChartFile  = "incidents_by_month.png"
	CategoryChartFile = "top_categories.png"
)

// maxTickLabels bounds how many month labels are drawn before thinning
const maxTickLabels = 24

// Config sets the size of every rendered chart
type Config struct {
	WidthIn  float64
	HeightIn float64
}

// DefaultConfig returns an 8x5 inch canvas
func DefaultConfig() Config {
	return Config{WidthIn: 8, HeightIn: 5}
}

// Renderer draws count series as PNG charts into an artifact store
type Renderer struct {
	config Config
	store  *dataset.ArtifactStore
}

// NewRenderer creates a renderer writing into store
func NewRenderer(config Config, store *dataset.ArtifactStore) *Renderer {
	if config.WidthIn <= 0 || config.HeightIn <= 0 {
		config = DefaultConfig()
	}
	return &Renderer{config: config, store: store}
}

// RenderMonthly draws the monthly series as a line with one marker per month
func (r *Renderer) RenderMonthly(series incident.CountSeries) (string, error) {
	p := newPlot("Incidents per Month", "Month", "Count")

	if series.Len() > 0 {
		points := make(plotter.XYs, series.Len())
		for i, entry := range series.Entries {
			points[i].X = float64(i)
			points[i].Y = float64(entry.Count)
		}
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return "", errors.RenderFailed(MonthlyChartFile, err)
		}
		p.Add(line, scatter, plotter.NewGrid())
		p.NominalX(thinLabels(series.Keys(), maxTickLabels)...)
		rotateTickLabels(p)
	}

	return r.save(p, MonthlyChartFile)
}

// RenderTopCategories draws one bar per category
func (r *Renderer) RenderTopCategories(series incident.CountSeries, k int) (string, error) {
	p := newPlot(fmt.Sprintf("Top %d Incident Categories", k), "Category", "Count")

	if series.Len() > 0 {
		bars, err := plotter.NewBarChart(plotter.Values(series.Values()), r.barWidth(series.Len()))
		if err != nil {
			return "", errors.RenderFailed(CategoryChartFile, err)
		}
		p.Add(bars)
		p.NominalX(series.Keys()...)
		rotateTickLabels(p)
	}

	return r.save(p, CategoryChartFile)
}

func (r *Renderer) barWidth(n int) vg.Length {
	// Leave roughly a third of each slot empty
	slot := vg.Length(r.config.WidthIn) * vg.Inch * 0.8 / vg.Length(n)
	return vg.Length(math.Min(float64(slot*2/3), float64(vg.Points(40))))
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	startTime := time.Now()

	w := vg.Length(r.config.WidthIn) * vg.Inch
	h := vg.Length(r.config.HeightIn) * vg.Inch
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return "", errors.RenderFailed(name, err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", errors.RenderFailed(name, err)
	}

	path, err := r.store.Store(name, &buf)
	if err != nil {
		return "", errors.RenderFailed(name, err)
	}

	log.Printf("[ChartRenderer] Wrote %s in %.2fms", path, float64(time.Since(startTime).Nanoseconds())/1e6)
	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	// Counts start at zero; also gives empty charts a valid range
	p.Y.Min = 0
	p.Y.Max = 1
	p.X.Min = 0
	p.X.Max = 1
	return p
}

func rotateTickLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// thinLabels blanks labels so that about limit are shown, keeping the first and last
func thinLabels(labels []string, limit int) []string {
	if len(labels) <= limit {
		return labels
	}
	step := int(math.Ceil(float64(len(labels)) / float64(limit)))
	out := make([]string, len(labels))
	for i, label := range labels {
		if i%step == 0 || i == len(labels)-1 {
			out[i] = label
		}
	}
	return out
}
