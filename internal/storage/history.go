package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"logdash/internal/models"
)

// DefaultHistoryEntries bounds the number of run records kept on disk.
const DefaultHistoryEntries = 5000

// HistoryStore handles persistence of parsed run records to disk.
type HistoryStore struct {
	mu         sync.RWMutex
	path       string
	maxEntries int
	history    []models.RunRecord
}

// NewHistoryStore creates a store and loads existing records if present.
func NewHistoryStore(path string, maxEntries int) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}
	if maxEntries <= 0 {
		maxEntries = DefaultHistoryEntries
	}

	s := &HistoryStore{path: path, maxEntries: maxEntries}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Append adds a record, drops the oldest beyond the limit and persists to disk.
func (s *HistoryStore) Append(record models.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, record)
	if over := len(s.history) - s.maxEntries; over > 0 {
		s.history = append([]models.RunRecord(nil), s.history[over:]...)
	}
	return s.persist()
}

// Latest returns the most recent record for a log if one exists.
func (s *HistoryStore) Latest(log string) (models.RunRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Log == log {
			return s.history[i], true
		}
	}
	return models.RunRecord{}, false
}

// History returns a copy of every record, oldest first.
func (s *HistoryStore) History() []models.RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]models.RunRecord, len(s.history))
	copy(copied, s.history)
	return copied
}

// HistoryN returns a copy of the newest n records, oldest first.
func (s *HistoryStore) HistoryN(n int) []models.RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if n > 0 && len(s.history) > n {
		start = len(s.history) - n
	}
	copied := make([]models.RunRecord, len(s.history)-start)
	copy(copied, s.history[start:])
	return copied
}

func (s *HistoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.history = []models.RunRecord{}
			return nil
		}
		return fmt.Errorf("read history: %w", err)
	}

	if len(data) == 0 {
		s.history = []models.RunRecord{}
		return nil
	}

	var records []models.RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse history: %w", err)
	}

	s.history = records
	return nil
}

func (s *HistoryStore) persist() error {
	bytes, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
