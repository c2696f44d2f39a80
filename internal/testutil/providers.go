package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
)

// GoodProvider returns the provided games with no error.
type GoodProvider struct {
	Games []domaingames.Game
}

func (p GoodProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	return p.Games, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	return nil, providers.ErrProviderUnavailable
}
