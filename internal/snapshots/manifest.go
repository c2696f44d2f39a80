package snapshots

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int                   `json:"version"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Retention   Retention             `json:"retention"`
	Seasons     map[string]SeasonMeta `json:"seasons"`
}

type Retention struct {
	SeasonDays int `json:"seasonDays"`
}

// SeasonMeta describes one stored season snapshot.
type SeasonMeta struct {
	League        string    `json:"league"`
	Games         int       `json:"games"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func seasonKey(seasonID int64) string {
	return strconv.FormatInt(seasonID, 10)
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     2,
		GeneratedAt: now,
		Retention:   Retention{SeasonDays: retentionDays},
		Seasons:     map[string]SeasonMeta{},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(manifestPath(basePath))
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	if m.Seasons == nil {
		m.Seasons = map[string]SeasonMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	path := manifestPath(basePath)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
