package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// ErrSnapshotNotFound mirrors the miss returned by real snapshot stores.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []domaingames.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	seasons []int64
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Lock()
	s.seasons = append(s.seasons, seasonID)
	s.mu.Unlock()
	s.Calls.Add(1)
	return s.Games, s.Err
}

// Seasons returns the season IDs requested so far, in call order.
func (s *StubProvider) Seasons() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.seasons...)
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Seasons map[int64]domaingames.SeasonResponse
	LoadErr error
}

// LoadSeason returns the snapshot for seasonID when present.
func (s *StubSnapshotStore) LoadSeason(seasonID int64) (domaingames.SeasonResponse, error) {
	if s.LoadErr != nil {
		return domaingames.SeasonResponse{}, s.LoadErr
	}
	resp, ok := s.Seasons[seasonID]
	if !ok {
		return domaingames.SeasonResponse{}, ErrSnapshotNotFound
	}
	return resp, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[int64]domaingames.SeasonResponse
	Err     error
}

// WriteSeasonSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteSeasonSnapshot(seasonID int64, snapshot domaingames.SeasonResponse) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[int64]domaingames.SeasonResponse)
	}
	w.Written[seasonID] = snapshot
	return nil
}

// Count returns how many seasons were written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// Season returns the snapshot written for seasonID.
func (w *StubSnapshotWriter) Season(seasonID int64) (domaingames.SeasonResponse, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, ok := w.Written[seasonID]
	return snap, ok
}
