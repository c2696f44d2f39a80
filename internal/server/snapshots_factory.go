package server

import (
	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/poller"
	"github.com/preston-bernstein/season-weeks-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer poller.SnapshotWriter
}

// buildSnapshots returns empty components when snapshots are disabled so
// callers can pass the fields straight through as nil interfaces.
func buildSnapshots(cfg config.Config) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Dir == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Snapshots.Dir),
		writer: snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays),
	}
}
