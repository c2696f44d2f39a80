package snapshots

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	at := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	w.now = fixedClock(at)

	writeSimpleSnapshot(t, w, 1)
	requireSnapshotExists(t, w, 1)

	data, err := os.ReadFile(SeasonSnapshotPath(dir, 1))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap domaingames.SeasonResponse
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.SeasonID != 1 || len(snap.Games) != 2 || snap.Games[0].Week != 1 {
		t.Fatalf("expected games sorted by week, got %+v", snap.Games)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	meta, ok := m.Seasons["1"]
	if !ok {
		t.Fatalf("expected manifest entry for season 1, got %+v", m.Seasons)
	}
	if meta.Games != 2 || meta.League != "nfl" || !meta.LastRefreshed.Equal(at) {
		t.Fatalf("unexpected manifest entry %+v", meta)
	}
	if m.Retention.SeasonDays != 10 {
		t.Fatalf("expected retention 10, got %d", m.Retention.SeasonDays)
	}
}

func TestWriterPrunesStaleSeasons(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 7)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	w.now = fixedClock(start)
	writeSimpleSnapshot(t, w, 1)

	w.now = fixedClock(start.AddDate(0, 0, 8))
	writeSimpleSnapshot(t, w, 2)

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if _, ok := m.Seasons["1"]; ok {
		t.Fatalf("expected season 1 pruned, got %+v", m.Seasons)
	}
	if _, err := os.Stat(SeasonSnapshotPath(dir, 1)); !os.IsNotExist(err) {
		t.Fatalf("expected season 1 file removed, got %v", err)
	}
	requireSnapshotExists(t, w, 2)
}

func TestWriterRejectsInvalidInput(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteSeasonSnapshot(1, domaingames.SeasonResponse{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
	if err := w.WriteSeasonSnapshot(0, domaingames.SeasonResponse{}); err == nil {
		t.Fatalf("expected error for zero season id")
	}
}

func TestWriterRewriteIsStable(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	writeSimpleSnapshot(t, w, 3)
	first, _ := os.ReadFile(SeasonSnapshotPath(dir, 3))
	writeSimpleSnapshot(t, w, 3)
	second, _ := os.ReadFile(SeasonSnapshotPath(dir, 3))
	if string(first) != string(second) {
		t.Fatalf("expected identical snapshot contents on rewrite")
	}
}
