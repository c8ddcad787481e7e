// Package store persists the user record table as a single JSON file.
//
// The table is one durable unit: every mutation runs a full
// load -> merge -> save cycle, and all such cycles serialize through one
// mutex regardless of which user record is touched. Two concurrent
// updates to different users still contend on the same critical section,
// because each writer persists a snapshot of the whole table.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"meditation-course-bot/internal/model"
)

// Store is the file-backed user record table. It is the only owner of
// the backing file; no other component reads or writes it directly.
// The mutex is table-wide on purpose: the file has no row-level
// granularity, so there is exactly one critical section.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a Store persisting to the given file path. The parent
// directory is created on the first save.
func New(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Get returns the record for the user, or a freshly-initialized default
// record (not yet persisted) if none exists. It never fails on a
// missing key.
func (s *Store) Get(userID string) model.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.loadTable()
	rec, ok := table[userID]
	if !ok {
		return model.NewUserRecord(userID)
	}
	return rec
}

// Update applies mutate to the user's record (default-constructed if
// absent), stamps last_activity, and durably persists the entire table.
// The whole load-merge-save cycle is one mutually-exclusive critical
// section. Returns the record as persisted.
func (s *Store) Update(userID string, mutate func(rec *model.UserRecord)) (model.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.loadTable()
	rec, ok := table[userID]
	if !ok {
		rec = model.NewUserRecord(userID)
	}

	mutate(&rec)
	now := s.now()
	rec.LastActivity = &now
	table[userID] = rec

	if err := s.saveTable(table); err != nil {
		return model.UserRecord{}, err
	}
	return rec, nil
}

// LoadTable reads the full durable table. A missing file or unparsable
// content yields an empty table (first-run semantics), never an error.
func (s *Store) LoadTable() map[string]model.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTable()
}

// SaveTable serializes and durably writes the entire table as one unit.
func (s *Store) SaveTable(table map[string]model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveTable(table)
}

// loadTable reads the backing file. Callers must hold the table lock.
func (s *Store) loadTable() map[string]model.UserRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("User table unreadable, starting from empty table")
		}
		return map[string]model.UserRecord{}
	}
	if len(data) == 0 {
		return map[string]model.UserRecord{}
	}

	var table map[string]model.UserRecord
	if err := json.Unmarshal(data, &table); err != nil {
		// Corruption degrades to first-run semantics rather than
		// crashing startup. The broken payload stays on disk until
		// the next save overwrites it.
		log.Warn().Err(err).Str("path", s.path).Msg("User table corrupt, starting from empty table")
		return map[string]model.UserRecord{}
	}
	if table == nil {
		return map[string]model.UserRecord{}
	}
	return table
}

// saveTable writes the table atomically via a temp file in the same
// directory followed by a rename, so readers never observe a partial
// write. Callers must hold the table lock.
func (s *Store) saveTable(table map[string]model.UserRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user table: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp table file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write user table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp table file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace user table: %w", err)
	}
	return nil
}
