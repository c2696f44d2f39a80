package snapshots

import (
	"fmt"
	"path/filepath"
)

const seasonsDir = "seasons"

// SeasonSnapshotPath builds the path to a season snapshot.
func SeasonSnapshotPath(basePath string, seasonID int64) string {
	return filepath.Join(basePath, seasonsDir, fmt.Sprintf("%d.json", seasonID))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}
