package dataset

import (
	"log"
	"os"

	"crimescope/internal/errors"
)

// LocateSource picks the table to load. A requested path that does not exist
// falls back to the default resource with a warning; the run fails with
// SOURCE_NOT_FOUND only when neither exists.
func LocateSource(requested, fallback string) (string, error) {
	var tried []string

	if requested != "" {
		if isRegularFile(requested) {
			return requested, nil
		}
		tried = append(tried, requested)
		log.Printf("[Source] WARNING: %s not found, falling back to %s", requested, fallback)
	}

	if fallback != "" && fallback != requested {
		if isRegularFile(fallback) {
			return fallback, nil
		}
		tried = append(tried, fallback)
	}

	return "", errors.SourceNotFound(fallback, tried)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
