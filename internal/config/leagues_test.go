package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func writeLeagues(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write leagues file: %v", err)
	}
}

func nflMaxWeek(n int) string {
	return "leagues:\n  nfl:\n    max_week: " + strconv.Itoa(n) + "\n"
}

func TestLoadLeaguesBuiltins(t *testing.T) {
	reg, err := LoadLeagues("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nfl, ok := reg.Lookup("nfl"); !ok || nfl.MaxWeek != 18 {
		t.Fatalf("expected builtin nfl, got %+v", nfl)
	}
}

func TestLoadLeaguesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.yaml")
	writeLeagues(t, path, nflMaxWeek(17))

	reg, err := LoadLeagues(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nfl, _ := reg.Lookup("nfl"); nfl.MaxWeek != 17 {
		t.Fatalf("expected max week 17, got %d", nfl.MaxWeek)
	}

	if _, err := LoadLeagues(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func waitForMaxWeek(t *testing.T, lookup func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if lookup() == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected max week %d, got %d", want, lookup())
}

func TestWatchLeaguesReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.yaml")
	writeLeagues(t, path, nflMaxWeek(17))
	reg, err := LoadLeagues(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := WatchLeagues(ctx, path, reg, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	lookup := func() int {
		nfl, _ := reg.Lookup("nfl")
		return nfl.MaxWeek
	}

	writeLeagues(t, path, nflMaxWeek(16))
	waitForMaxWeek(t, lookup, 16)

	// Invalid edits keep the last good table.
	writeLeagues(t, path, "leagues:\n  nfl:\n    max_week: 0\n")
	time.Sleep(200 * time.Millisecond)
	if got := lookup(); got != 16 {
		t.Fatalf("expected previous table kept, got max week %d", got)
	}
}

func TestLeagueWatcherCloseNil(t *testing.T) {
	var w *LeagueWatcher
	if err := w.Close(); err != nil {
		t.Fatalf("expected nil close on nil watcher, got %v", err)
	}
}
