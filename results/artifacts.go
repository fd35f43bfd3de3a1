package results

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is a results-directory entry with its on-disk size.
type Artifact struct {
	Name string
	Size int64
}

// ListArtifacts enumerates directory entries with image or table suffixes
// (.png, .csv) in name order, with sizes read at call time.
func ListArtifacts(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading results directory: %w", err)
	}

	var arts []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".png" && ext != ".csv" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		arts = append(arts, Artifact{Name: e.Name(), Size: info.Size()})
	}
	return arts, nil
}
