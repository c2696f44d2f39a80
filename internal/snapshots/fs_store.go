package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// ErrNotFound is returned when no snapshot exists for a season.
var ErrNotFound = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadSeason(seasonID int64) (domaingames.SeasonResponse, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSeason reads {basePath}/seasons/{id}.json.
func (s *FSStore) LoadSeason(seasonID int64) (domaingames.SeasonResponse, error) {
	if s == nil {
		return domaingames.SeasonResponse{}, errors.New("snapshot store not configured")
	}
	f, err := os.Open(SeasonSnapshotPath(s.basePath, seasonID))
	if errors.Is(err, os.ErrNotExist) {
		return domaingames.SeasonResponse{}, ErrNotFound
	}
	if err != nil {
		return domaingames.SeasonResponse{}, err
	}
	defer f.Close()

	var payload domaingames.SeasonResponse
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return domaingames.SeasonResponse{}, err
	}
	if payload.SeasonID == 0 {
		payload.SeasonID = seasonID
	}
	if payload.Games == nil {
		payload.Games = []domaingames.Game{}
	}
	return payload, nil
}
