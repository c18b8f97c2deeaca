package ports

import (
	"context"

	"crimescope/domain/incident"
)

// TableLoader reads a source file into a raw table
type TableLoader interface {
	Load(ctx context.Context, path string) (*incident.RawTable, error)
}
