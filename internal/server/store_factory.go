package server

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/store"
)

const (
	storeMemory = "memory"
	storeSQLite = "sqlite"
)

// buildStore opens the configured schedule cache. The returned close func is
// never nil.
func buildStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func() error, error) {
	switch cfg.Backend {
	case storeMemory, "":
		return store.NewMemoryStore(), func() error { return nil }, nil
	case storeSQLite:
		st, err := store.OpenSQLStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, st.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
