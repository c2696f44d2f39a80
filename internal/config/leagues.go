package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

// LoadLeagues builds the league registry, merging the leagues file over the
// built-ins when path is set.
func LoadLeagues(path string) (*leagues.Registry, error) {
	if path == "" {
		return leagues.NewRegistry(nil), nil
	}
	table, err := leagues.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return leagues.NewRegistry(table), nil
}

// LeagueWatcher reloads a leagues file into a registry whenever it changes.
// Invalid edits are logged and the previous table stays active.
type LeagueWatcher struct {
	path     string
	registry *leagues.Registry
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// WatchLeagues starts watching path's directory. Editors often replace files
// rather than write them in place, so events are filtered by name.
func WatchLeagues(ctx context.Context, path string, registry *leagues.Registry, logger *slog.Logger) (*LeagueWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("leagues watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	lw := &LeagueWatcher{
		path:     abs,
		registry: registry,
		logger:   logger,
		watcher:  w,
		done:     make(chan struct{}),
	}
	go lw.run(ctx)
	return lw, nil
}

func (lw *LeagueWatcher) run(ctx context.Context) {
	defer close(lw.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != lw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			lw.reload()
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error(lw.logger, "leagues watcher error", err)
		}
	}
}

func (lw *LeagueWatcher) reload() {
	// Truncate-then-write shows up as an empty file first.
	if info, err := os.Stat(lw.path); err == nil && info.Size() == 0 {
		return
	}
	table, err := leagues.LoadFile(lw.path)
	if err != nil {
		logging.Warn(lw.logger, "leagues reload rejected", "path", lw.path, "error", err)
	} else {
		lw.registry.Replace(table)
		logging.Info(lw.logger, "leagues reloaded", "path", lw.path, logging.FieldCount, len(table))
	}
}

// Close stops the watcher and waits for its goroutine.
func (lw *LeagueWatcher) Close() error {
	if lw == nil {
		return nil
	}
	err := lw.watcher.Close()
	<-lw.done
	return err
}
