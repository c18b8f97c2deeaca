package report

import (
	"encoding/json"
	"path/filepath"

	"crimescope/internal/dataset"
	"crimescope/internal/errors"
)

// WriteJSON writes the run as indented JSON to path, creating parent directories
func WriteJSON(run *Run, path string) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", errors.RenderFailed(path, err)
	}
	data = append(data, '\n')

	written, err := dataset.NewArtifactStore(filepath.Dir(path)).StoreBytes(filepath.Base(path), data)
	if err != nil {
		return "", errors.RenderFailed(path, err)
	}
	return written, nil
}
