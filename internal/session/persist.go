package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/season-weeks-service/internal/domain/users"
)

// ErrNotPersisted is returned by Load when nothing has been saved.
var ErrNotPersisted = errors.New("session not persisted")

// Record is the persisted form of a session.
type Record struct {
	SessionID string      `json:"session_id"`
	User      *users.User `json:"user"`
	Token     string      `json:"token"`
	StartedAt time.Time   `json:"started_at"`
}

// Persister stores a single session record.
type Persister interface {
	Load() (Record, error)
	Save(Record) error
	Delete() error
}

// FilePersister stores the session as JSON at Path.
type FilePersister struct {
	Path string
}

// NewFilePersister returns a persister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

// DefaultPath is the per-user session file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "season-weeks", "session.json")
}

func (p *FilePersister) Load() (Record, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNotPersisted
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode session: %w", err)
	}
	if rec.Token == "" {
		return Record{}, ErrNotPersisted
	}
	return rec, nil
}

// Save writes the record atomically with owner-only permissions.
func (p *FilePersister) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := p.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.Path)
}

func (p *FilePersister) Delete() error {
	err := os.Remove(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
