package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

const defaultRetentionDays = 14

// Writer persists season snapshots and the manifest, pruning seasons that
// have not been refreshed within the retention window.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time

	// serializes manifest read-modify-write across concurrent seasons
	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeasonSnapshot writes one season's games and updates the manifest.
func (w *Writer) WriteSeasonSnapshot(seasonID int64, snapshot domaingames.SeasonResponse) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if seasonID <= 0 {
		return fmt.Errorf("invalid season id %d", seasonID)
	}
	snapshot.SeasonID = seasonID
	if snapshot.Games == nil {
		snapshot.Games = []domaingames.Game{}
	}
	games := append([]domaingames.Game(nil), snapshot.Games...)
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		if games[i].StartTime != games[j].StartTime {
			return games[i].StartTime < games[j].StartTime
		}
		return games[i].ID < games[j].ID
	})
	snapshot.Games = games

	w.mu.Lock()
	defer w.mu.Unlock()

	target := SeasonSnapshotPath(w.basePath, seasonID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, target); err != nil {
			return err
		}
	}
	return w.updateManifest(seasonID, snapshot)
}

func (w *Writer) updateManifest(seasonID int64, snapshot domaingames.SeasonResponse) error {
	now := w.now().UTC()
	m, err := ReadManifest(w.basePath)
	if err != nil {
		m = defaultManifest(w.retentionDays, now)
	}
	m.Retention.SeasonDays = w.retentionDays
	m.Seasons[seasonKey(seasonID)] = SeasonMeta{
		League:        snapshot.League,
		Games:         len(snapshot.Games),
		LastRefreshed: now,
	}
	w.prune(&m, now)
	m.GeneratedAt = now
	return writeManifest(w.basePath, m)
}

// prune drops seasons whose last refresh is older than the retention window.
func (w *Writer) prune(m *Manifest, now time.Time) {
	cutoff := now.AddDate(0, 0, -w.retentionDays)
	for key, meta := range m.Seasons {
		if !meta.LastRefreshed.Before(cutoff) {
			continue
		}
		if id, err := strconv.ParseInt(key, 10, 64); err == nil {
			_ = os.Remove(SeasonSnapshotPath(w.basePath, id))
		}
		delete(m.Seasons, key)
	}
}
