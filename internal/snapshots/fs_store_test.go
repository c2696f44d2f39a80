package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreLoadSeason(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	writeSimpleSnapshot(t, w, 4)

	got, err := NewFSStore(dir).LoadSeason(4)
	if err != nil {
		t.Fatalf("failed to load season: %v", err)
	}
	if got.SeasonID != 4 || got.League != "nfl" || len(got.Games) != 2 {
		t.Fatalf("unexpected season snapshot: %+v", got)
	}
}

func TestFSStoreErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir)
	if _, err := store.LoadSeason(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nilStore *FSStore
	if _, err := nilStore.LoadSeason(1); err == nil {
		t.Fatalf("expected error for nil store")
	}

	path := SeasonSnapshotPath(dir, 2)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.LoadSeason(2); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
