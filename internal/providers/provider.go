package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// GameProvider fetches the full schedule of one season.
type GameProvider interface {
	FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error)
}

// GameProviderFunc adapts a function to GameProvider.
type GameProviderFunc func(ctx context.Context, seasonID int64) ([]domaingames.Game, error)

// FetchGames calls f.
func (f GameProviderFunc) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	return f(ctx, seasonID)
}
