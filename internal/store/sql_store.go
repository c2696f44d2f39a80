package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

const sqliteDriver = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id            INTEGER PRIMARY KEY,
	season_id     INTEGER NOT NULL,
	espn_id       TEXT    NOT NULL DEFAULT '',
	home_team_id  INTEGER NOT NULL DEFAULT 0,
	away_team_id  INTEGER NOT NULL DEFAULT 0,
	start_time    TEXT    NOT NULL DEFAULT '',
	day_of_week   TEXT    NOT NULL DEFAULT '',
	week          INTEGER NOT NULL DEFAULT 0,
	location      TEXT    NOT NULL DEFAULT '',
	primetime     TEXT    NOT NULL DEFAULT '',
	network       TEXT    NOT NULL DEFAULT '',
	home_score    INTEGER,
	away_score    INTEGER,
	status        TEXT    NOT NULL DEFAULT '',
	is_postseason INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_games_season_week ON games (season_id, week);
`

const insertGame = `
INSERT OR REPLACE INTO games (
	id, season_id, espn_id, home_team_id, away_team_id, start_time, day_of_week,
	week, location, primetime, network, home_score, away_score, status, is_postseason
) VALUES (
	:id, :season_id, :espn_id, :home_team_id, :away_team_id, :start_time, :day_of_week,
	:week, :location, :primetime, :network, :home_score, :away_score, :status, :is_postseason
)`

// SQLStore persists schedules in SQLite through sqlx.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQLStore connects to dsn and applies the schema.
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, sqliteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	s := NewSQLStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an existing connection.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the games table when missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate games schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// ListGames returns a season's games ordered by week then start time.
func (s *SQLStore) ListGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	games := []domaingames.Game{}
	err := s.db.SelectContext(ctx, &games,
		"SELECT * FROM games WHERE season_id = ? ORDER BY week, start_time, id", seasonID)
	if err != nil {
		return nil, fmt.Errorf("list games for season %d: %w", seasonID, err)
	}
	return games, nil
}

// GetGame retrieves a game by ID.
func (s *SQLStore) GetGame(ctx context.Context, id int64) (domaingames.Game, bool, error) {
	var g domaingames.Game
	err := s.db.GetContext(ctx, &g, "SELECT * FROM games WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domaingames.Game{}, false, nil
	}
	if err != nil {
		return domaingames.Game{}, false, fmt.Errorf("get game %d: %w", id, err)
	}
	return g, true, nil
}

// SetGames replaces one season's games in a single transaction.
func (s *SQLStore) SetGames(ctx context.Context, seasonID int64, games []domaingames.Game) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace season %d: %w", seasonID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM games WHERE season_id = ?", seasonID); err != nil {
		return fmt.Errorf("clear season %d: %w", seasonID, err)
	}
	for _, g := range games {
		g.SeasonID = seasonID
		if _, err := tx.NamedExecContext(ctx, insertGame, g); err != nil {
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// Seasons lists stored season IDs, ascending.
func (s *SQLStore) Seasons(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := s.db.SelectContext(ctx, &ids, "SELECT DISTINCT season_id FROM games ORDER BY season_id"); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return ids, nil
}
