package testutil

import (
	"context"

	"github.com/preston-bernstein/season-weeks-service/internal/app/schedule"
	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/store"
)

// NewScheduleWithGames builds a schedule service over an in-memory store with
// season 1 bound to NFL and season 2 to NBA, preloading season 1 with g.
func NewScheduleWithGames(g []domaingames.Game, opts ...schedule.Option) *schedule.Service {
	ms := store.NewMemoryStore()
	if len(g) > 0 {
		_ = ms.SetGames(context.Background(), 1, g)
	}
	return schedule.NewService(ms, nil, map[int64]string{1: "nfl", 2: "nba"}, opts...)
}
