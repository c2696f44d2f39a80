package snapshots

import (
	"os"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

func simpleSnapshot(seasonID int64) domaingames.SeasonResponse {
	return domaingames.NewSeasonResponse(seasonID, "nfl", []domaingames.Game{
		{ID: seasonID*100 + 2, SeasonID: seasonID, Week: 2, StartTime: "2025-09-11T20:15:00-04:00"},
		{ID: seasonID*100 + 1, SeasonID: seasonID, Week: 1, StartTime: "2025-09-04T20:20:00-04:00"},
	})
}

func writeSimpleSnapshot(t *testing.T, w *Writer, seasonID int64) {
	t.Helper()
	if err := w.WriteSeasonSnapshot(seasonID, simpleSnapshot(seasonID)); err != nil {
		t.Fatalf("failed to write snapshot %d: %v", seasonID, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, seasonID int64) {
	t.Helper()
	if _, err := os.Stat(SeasonSnapshotPath(w.BasePath(), seasonID)); err != nil {
		t.Fatalf("expected snapshot for season %d to be written: %v", seasonID, err)
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
