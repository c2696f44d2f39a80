package store

import (
	"context"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// Store persists season schedules.
type Store interface {
	ListGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error)
	GetGame(ctx context.Context, id int64) (domaingames.Game, bool, error)
	SetGames(ctx context.Context, seasonID int64, games []domaingames.Game) error
	Seasons(ctx context.Context) ([]int64, error)
}

func cloneGame(g domaingames.Game) domaingames.Game {
	if g.HomeScore != nil {
		v := *g.HomeScore
		g.HomeScore = &v
	}
	if g.AwayScore != nil {
		v := *g.AwayScore
		g.AwayScore = &v
	}
	return g
}
