package snapshots

import (
	"context"
	"errors"
	"log/slog"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

// Seeder receives games restored from snapshots.
type Seeder interface {
	ReplaceGames(ctx context.Context, seasonID int64, games []domaingames.Game) error
}

// Warm seeds target with every stored season snapshot so the service can
// answer before the first poll completes. It returns the number of seasons
// restored; missing snapshots are skipped.
func Warm(ctx context.Context, store Store, target Seeder, seasonIDs []int64, logger *slog.Logger) int {
	if store == nil || target == nil {
		return 0
	}
	warmed := 0
	for _, id := range seasonIDs {
		if ctx.Err() != nil {
			break
		}
		snap, err := store.LoadSeason(id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				logging.Warn(logger, "snapshot load failed", logging.FieldSeasonID, id, "error", err)
			}
			continue
		}
		if err := target.ReplaceGames(ctx, id, snap.Games); err != nil {
			logging.Warn(logger, "snapshot warm failed", logging.FieldSeasonID, id, "error", err)
			continue
		}
		warmed++
	}
	if warmed > 0 {
		logging.Info(logger, "snapshots warmed", logging.FieldCount, warmed)
	}
	return warmed
}
