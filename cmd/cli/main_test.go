package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"crimescope/adapters/chart"
	"crimescope/domain/core"
	"crimescope/internal/config"
	"crimescope/internal/errors"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Source: config.SourceConfig{DefaultPath: filepath.Join(dir, config.DefaultSourceName)},
		Output: config.OutputConfig{Dir: filepath.Join(dir, "out"), TopK: 10, ChartWidthIn: 6, ChartHeightIn: 4},
		Schema: config.SchemaConfig{Timezone: "UTC"},
	}
}

func execute(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestSampleThenReport(t *testing.T) {
	cfg := testConfig(t)

	sample := newSampleCmd(cfg)
	var sampleOut bytes.Buffer
	sample.SetOut(&sampleOut)
	require.NoError(t, execute(sample, "--rows", "120", "--seed", "3"))
	assert.Contains(t, sampleOut.String(), "Wrote: "+cfg.Source.DefaultPath)

	root := newRootCmd(cfg)
	require.NoError(t, execute(root, "--topk", "3", "--html"))

	assert.Equal(t, 3, cfg.Output.TopK)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, chart.MonthlyChartFile))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, chart.CategoryChartFile))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "report.html"))
}

func TestReportWithoutSource(t *testing.T) {
	cfg := testConfig(t)

	err := execute(newRootCmd(cfg), "--csv", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, core.IsSourceNotFound(err))
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, chart.MonthlyChartFile))
}

func TestReportRejectsInvalidTopK(t *testing.T) {
	cfg := testConfig(t)

	err := execute(newRootCmd(cfg), "--topk", "0")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestTopKFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("CRIMESCOPE_TOPK", "0")
	cfg, err := config.Load()
	require.NoError(t, err)

	paths := testConfig(t)
	cfg.Source = paths.Source
	cfg.Output.Dir = paths.Output.Dir
	cfg.Schema.Timezone = "UTC"

	require.NoError(t, execute(newSampleCmd(cfg), "--rows", "40", "--seed", "9"))
	require.NoError(t, execute(newRootCmd(cfg), "--topk", "5"))

	assert.Equal(t, 5, cfg.Output.TopK)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, chart.CategoryChartFile))
}

func TestColumnOverrideFlags(t *testing.T) {
	cfg := testConfig(t)

	root := newRootCmd(cfg)
	root.RunE = nil
	root.Run = func(*cobra.Command, []string) {}
	require.NoError(t, execute(root, "--date-column", "CMPLNT_FR_DT,RPT_DT", "--area-column", "BORO_NM"))

	assert.Equal(t, []string{"CMPLNT_FR_DT", "RPT_DT"}, cfg.Schema.DateColumns)
	assert.Equal(t, []string{"BORO_NM"}, cfg.Schema.AreaColumns)
}
