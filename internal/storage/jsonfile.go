package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// FileStore keeps every collection in one JSON document on disk. Each
// operation reads the whole file, mutates in memory and writes the whole
// file back; there is no partial or incremental persistence. A mutex
// serializes the read-modify-write cycle inside this process; writers in
// other processes still race last-write-wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON document at path. The
// file is created on first use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the full store. A missing file is initialized with the fixed
// set of empty collections and persisted before returning. Collections
// added after the file was created are backfilled so older files never
// trigger unknown-collection errors.
func (s *FileStore) Load() (map[string][]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (map[string][]Record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read store: %w", err)
		}
		data := emptyStore()
		if err := s.saveLocked(data); err != nil {
			return nil, err
		}
		return data, nil
	}

	data := make(map[string][]Record)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	for _, c := range Collections {
		if _, ok := data[c]; !ok {
			data[c] = []Record{}
		}
	}
	return data, nil
}

// Save serializes the full store and overwrites the file, creating the
// containing directory if needed.
func (s *FileStore) Save(data map[string][]Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(data)
}

func (s *FileStore) saveLocked(data map[string][]Record) error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	// Single direct write. A temp-file-plus-rename variant is more durable
	// on crash but trips over file locking on some platforms.
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

func emptyStore() map[string][]Record {
	data := make(map[string][]Record, len(Collections))
	for _, c := range Collections {
		data[c] = []Record{}
	}
	return data
}

// nextID computes the next integer id as max(existing ids)+1, starting at 1.
// Ids that are not integers (generated string ids) are skipped.
func nextID(col []Record) int64 {
	var max int64
	for _, rec := range col {
		if n, err := strconv.ParseInt(IDString(rec["id"]), 10, 64); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// Insert assigns the next integer id (unless the item already carries one),
// stamps timestamps, appends and persists. The stored record is returned.
func (s *FileStore) Insert(_ context.Context, collection string, item Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !KnownCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	data, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	rec := Clone(item)
	if IDString(rec["id"]) == "" {
		rec["id"] = nextID(data[collection])
	}
	now := NowStamp()
	rec["createdAt"] = now
	rec["updatedAt"] = now

	data[collection] = append(data[collection], rec)
	if err := s.saveLocked(data); err != nil {
		return nil, err
	}
	return Clone(rec), nil
}

// List returns snapshot copies of every record matching filter. A nil
// filter matches everything.
func (s *FileStore) List(_ context.Context, collection string, filter Filter) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	out := []Record{}
	for _, rec := range data[collection] {
		if filter == nil || Matches(rec, filter) {
			out = append(out, Clone(rec))
		}
	}
	return out, nil
}

// Query returns snapshot copies of every record the predicate accepts.
func (s *FileStore) Query(_ context.Context, collection string, pred func(Record) bool) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	out := []Record{}
	for _, rec := range data[collection] {
		if pred(rec) {
			out = append(out, Clone(rec))
		}
	}
	return out, nil
}

// FindByID returns the first record whose id matches by string comparison,
// or nil when absent.
func (s *FileStore) FindByID(_ context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, rec := range data[collection] {
		if SameID(rec["id"], id) {
			return Clone(rec), nil
		}
	}
	return nil, nil
}

// Update merges patch fields onto the existing record, refreshes updatedAt
// and persists. Returns nil when the id is absent.
func (s *FileStore) Update(_ context.Context, collection, id string, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for i, rec := range data[collection] {
		if !SameID(rec["id"], id) {
			continue
		}
		merged := Clone(rec)
		for k, v := range patch {
			merged[k] = cloneValue(v)
		}
		merged["updatedAt"] = NowStamp()
		data[collection][i] = merged
		if err := s.saveLocked(data); err != nil {
			return nil, err
		}
		return Clone(merged), nil
	}
	return nil, nil
}

// Remove deletes by id and persists. Reports whether a record was removed.
func (s *FileStore) Remove(_ context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	col := data[collection]
	for i, rec := range col {
		if SameID(rec["id"], id) {
			data[collection] = append(col[:i:i], col[i+1:]...)
			if err := s.saveLocked(data); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
