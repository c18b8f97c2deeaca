package tabular

import (
	"context"

	"crimescope/domain/incident"
)

// Loader opens any supported file with a shared reader configuration
type Loader struct {
	config ReaderConfig
}

// NewLoader creates a loader
func NewLoader(config ReaderConfig) *Loader {
	return &Loader{config: config}
}

// Load detects the format of path and reads it
func (l *Loader) Load(ctx context.Context, path string) (*incident.RawTable, error) {
	reader, err := NewDataReader(path, l.config)
	if err != nil {
		return nil, err
	}
	return reader.ReadTable(ctx)
}
