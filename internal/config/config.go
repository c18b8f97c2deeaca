package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"crimescope/internal/errors"
)

// DefaultSourceName is the resource loaded when no --csv path is usable.
const DefaultSourceName = "sample_crime.csv"

// Config represents the complete application configuration
type Config struct {
	Source  SourceConfig
	Output  OutputConfig
	Schema  SchemaConfig
	Logging LoggingConfig
}

// SourceConfig holds input table settings
type SourceConfig struct {
	Path        string
	DefaultPath string
	Sheet       string
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir           string
	TopK          int
	ChartWidthIn  float64
	ChartHeightIn float64
	JSONPath      string
	HTMLReport    bool
}

// SchemaConfig holds extra column aliases that take priority over the built-in lists,
// and the zone assumed for timestamps that carry no offset
type SchemaConfig struct {
	DateColumns     []string
	CategoryColumns []string
	AreaColumns     []string
	Timezone        string
}

// LoggingConfig holds diagnostic logging settings
type LoggingConfig struct {
	Verbose bool
}

// Load reads configuration from environment variables. Values are only
// parsed here; Validate runs once CLI flags have been applied on top.
func Load() (*Config, error) {
	env := &envReader{}
	config := &Config{
		Source: SourceConfig{
			DefaultPath: env.String("CRIMESCOPE_DEFAULT_SOURCE", DefaultSourceName),
			Sheet:       env.String("CRIMESCOPE_SHEET", ""),
		},
		Output: OutputConfig{
			Dir:           env.String("CRIMESCOPE_OUTDIR", "out"),
			TopK:          env.Int("CRIMESCOPE_TOPK", 10),
			ChartWidthIn:  env.Float("CRIMESCOPE_CHART_WIDTH_IN", 8),
			ChartHeightIn: env.Float("CRIMESCOPE_CHART_HEIGHT_IN", 5),
		},
		Schema: SchemaConfig{
			DateColumns:     env.List("CRIMESCOPE_DATE_COLUMNS"),
			CategoryColumns: env.List("CRIMESCOPE_CATEGORY_COLUMNS"),
			AreaColumns:     env.List("CRIMESCOPE_AREA_COLUMNS"),
			Timezone:        env.String("CRIMESCOPE_TIMEZONE", "UTC"),
		},
		Logging: LoggingConfig{Verbose: env.Bool("CRIMESCOPE_VERBOSE", false)},
	}

	if len(env.malformed) > 0 {
		return nil, errors.ConfigInvalid("malformed environment: " + strings.Join(env.malformed, "; "))
	}
	return config, nil
}

// Validate checks values that may also have been overridden by CLI flags
func (c *Config) Validate() error {
	if c.Output.TopK <= 0 {
		return errors.ConfigInvalid("topk must be a positive integer")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if c.Output.ChartWidthIn <= 0 || c.Output.ChartHeightIn <= 0 {
		return errors.ConfigInvalid("chart dimensions must be positive")
	}
	if strings.TrimSpace(c.Source.DefaultPath) == "" {
		return errors.ConfigInvalid("default source name is required")
	}
	if _, err := c.Location(); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("unknown timezone %q", c.Schema.Timezone))
	}
	return nil
}

// Location returns the configured zone for naive timestamps; empty means UTC
func (c *Config) Location() (*time.Location, error) {
	if c.Schema.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Schema.Timezone)
}

// envReader reads typed environment variables, remembering every value
// that is set but cannot be parsed
type envReader struct {
	malformed []string
}

func (e *envReader) lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (e *envReader) reject(key, value, want string) {
	e.malformed = append(e.malformed, fmt.Sprintf("%s=%q is not %s", key, value, want))
}

func (e *envReader) String(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok {
		return value
	}
	return defaultValue
}

func (e *envReader) Int(key string, defaultValue int) int {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		e.reject(key, value, "an integer")
		return defaultValue
	}
	return intValue
}

func (e *envReader) Float(key string, defaultValue float64) float64 {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.reject(key, value, "a number")
		return defaultValue
	}
	return floatValue
}

func (e *envReader) Bool(key string, defaultValue bool) bool {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		e.reject(key, value, "a boolean")
		return defaultValue
	}
	return boolValue
}

// List splits a comma-separated variable, dropping blank entries
func (e *envReader) List(key string) []string {
	value, ok := e.lookup(key)
	if !ok {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
