package store

import (
	"context"
	"sort"
	"sync"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe, season-keyed copy of games in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	seasons map[int64][]domaingames.Game
	byID    map[int64]domaingames.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons: make(map[int64][]domaingames.Game),
		byID:    make(map[int64]domaingames.Game),
	}
}

// ListGames returns a copy of a season's games ordered by week then start time.
func (s *MemoryStore) ListGames(_ context.Context, seasonID int64) ([]domaingames.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.seasons[seasonID]
	result := make([]domaingames.Game, 0, len(src))
	for _, g := range src {
		result = append(result, cloneGame(g))
	}
	return result, nil
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(_ context.Context, id int64) (domaingames.Game, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.byID[id]
	if !ok {
		return domaingames.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

// SetGames replaces one season's games with a new snapshot.
func (s *MemoryStore) SetGames(_ context.Context, seasonID int64, games []domaingames.Game) error {
	next := make([]domaingames.Game, 0, len(games))
	for _, g := range games {
		g.SeasonID = seasonID
		next = append(next, cloneGame(g))
	}
	sortGames(next)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, old := range s.seasons[seasonID] {
		delete(s.byID, old.ID)
	}
	s.seasons[seasonID] = next
	for _, g := range next {
		s.byID[g.ID] = g
	}
	return nil
}

// Seasons lists the season IDs that have been stored, ascending.
func (s *MemoryStore) Seasons(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.seasons))
	for id := range s.seasons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func sortGames(games []domaingames.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		if games[i].StartTime != games[j].StartTime {
			return games[i].StartTime < games[j].StartTime
		}
		return games[i].ID < games[j].ID
	})
}
