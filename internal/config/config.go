package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	// Seasons maps backend season IDs to league names, e.g. "1:nfl,2:nba".
	Seasons     string
	LeaguesFile string
	AdminToken  string
	CORSOrigins []string
	Store       StoreConfig
	Backend     BackendConfig
	Logging     LoggingConfig
	Snapshots   SnapshotConfig
	Metrics     MetricsConfig
}

// StoreConfig selects the schedule cache backend.
type StoreConfig struct {
	Backend string
	DSN     string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// SnapshotConfig controls on-disk season snapshots.
type SnapshotConfig struct {
	Enabled       bool
	Dir           string
	RetentionDays int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		Seasons:      envOrDefault(envSeasons, defaultSeasons),
		LeaguesFile:  envOrDefault(envLeaguesFile, ""),
		AdminToken:   envOrDefault(envAdminToken, ""),
		CORSOrigins:  listEnv(envCORSOrigins),
		Store: StoreConfig{
			Backend: strings.ToLower(envOrDefault(envStoreBackend, defaultStoreBackend)),
			DSN:     envOrDefault(envStoreDSN, defaultStoreDSN),
		},
		Backend: loadBackend(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Snapshots: SnapshotConfig{
			Enabled:       boolEnvOrDefault(envSnapshotsOn, defaultSnapshotsOn),
			Dir:           envOrDefault(envSnapshotDir, defaultSnapshotDir),
			RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		},
		Metrics: loadMetrics(),
	}
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// SeasonMap parses Seasons.
func (c Config) SeasonMap() (map[int64]string, error) {
	return ParseSeasons(c.Seasons)
}

// ParseSeasons parses "id:league" pairs separated by commas.
func ParseSeasons(raw string) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idRaw, league, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("season %q: expected id:league", part)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idRaw), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("season %q: invalid id", part)
		}
		league = strings.ToLower(strings.TrimSpace(league))
		if league == "" {
			return nil, fmt.Errorf("season %q: missing league", part)
		}
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("season %d listed twice", id)
		}
		out[id] = league
	}
	if len(out) == 0 {
		return nil, errors.New("no seasons configured")
	}
	return out, nil
}
