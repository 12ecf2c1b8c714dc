package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

// FileStore keeps one JSON file per record in a local directory. It
// backs the dev server and tests, where the S3 data bucket is not
// available.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	log *log.Logger
}

func NewFile(dir string, logger *log.Logger) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.Writer(), "store ", log.LstdFlags|log.LUTC)
	}
	return &FileStore{dir: dir, log: logger}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Put(_ context.Context, rec workout.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode workout %s: %w", rec.ID, err)
	}
	tmp := s.path(rec.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("put workout %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmp, s.path(rec.ID)); err != nil {
		return fmt.Errorf("put workout %s: %w", rec.ID, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (workout.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return workout.Record{}, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return workout.Record{}, fmt.Errorf("get workout %s: %w", id, err)
	}
	var rec workout.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return workout.Record{}, fmt.Errorf("decode workout %s: %w", id, err)
	}
	return rec, nil
}

func (s *FileStore) List(_ context.Context) ([]workout.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	records := []workout.Record{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.log.Printf("skip unreadable file %s: %v", entry.Name(), err)
			continue
		}
		var rec workout.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.log.Printf("skip unreadable file %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	return nil
}
