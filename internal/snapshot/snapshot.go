// Package snapshot persists each run's catalog as one immutable JSON
// file per calendar day and reads the previous day's file back.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
)

const dateLayout = "2006-01-02"

// Store is the append-only daily archive. Files are named by ISO date
// and never rewritten after Save.
type Store struct {
	dir    string
	logger *logrus.Logger
}

func NewStore(dir string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save writes the catalog for the given day. Overwriting an existing
// snapshot is refused; the archive is append-only.
func (s *Store) Save(day time.Time, records []*models.Imovel) error {
	path := s.pathFor(day)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("snapshot %s already exists", filepath.Base(path))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Write through a temp file so a crash never leaves a half-written
	// snapshot to be read as yesterday's data.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file":    filepath.Base(path),
		"records": len(records),
	}).Info("Saved daily snapshot")
	return nil
}

// LoadLatestBefore returns the most recent snapshot strictly before day,
// or an empty list when the archive has none (first run).
func (s *Store) LoadLatestBefore(day time.Time) ([]*models.Imovel, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot dir: %w", err)
	}

	cutoff := day.Format(dateLayout)
	var candidates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		if date < cutoff {
			candidates = append(candidates, date)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Strings(candidates)
	latest := candidates[len(candidates)-1]

	return s.load(filepath.Join(s.dir, latest+".json"))
}

// LoadDay returns one specific day's snapshot, or nil when absent.
func (s *Store) LoadDay(day time.Time) ([]*models.Imovel, error) {
	path := s.pathFor(day)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return s.load(path)
}

func (s *Store) load(path string) ([]*models.Imovel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var records []*models.Imovel
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func (s *Store) pathFor(day time.Time) string {
	return filepath.Join(s.dir, day.Format(dateLayout)+".json")
}
