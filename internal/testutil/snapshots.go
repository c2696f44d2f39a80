package testutil

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/season-weeks-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a one-game NFL snapshot for seasonID.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, seasonID int64) {
	t.Helper()
	if err := writeSnapshotPayload(w, seasonID); err != nil {
		t.Fatalf("failed to write snapshot %d: %v", seasonID, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, seasonID int64) error {
	if w == nil {
		return errors.New("nil writer")
	}
	return w.WriteSeasonSnapshot(seasonID, SampleSeasonResponse(seasonID, "nfl"))
}

// SnapshotPath returns the expected file path for a season snapshot.
func SnapshotPath(w *snapshots.Writer, seasonID int64) string {
	return snapshots.SeasonSnapshotPath(w.BasePath(), seasonID)
}
