package dicemachine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GridStoreKey is the slot that holds the most recent grid.
const GridStoreKey = "diceMosaicGrid"

// ErrNotFound is returned by stores for keys that hold no value.
var ErrNotFound = errors.New("key not found")

// Store is an opaque key-value blob store used to hand a grid over to
// a later export.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the value stored for key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Set stores a copy of data for key.
func (s *MemoryStore) Set(key string, data []byte) error {
	s.mu.Lock()
	s.blobs[key] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

// FileStore stores every key as a JSON file inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store that keeps its files in dir, the directory
// is created on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}

// Get reads the file of key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}
	return data, nil
}

// Set replaces the file of key.
func (s *FileStore) Set(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

// SaveGrid stores the grid as a JSON array of arrays in the grid slot.
func SaveGrid(store Store, grid Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encoding grid: %w", err)
	}
	return store.Set(GridStoreKey, data)
}

// LoadGrid returns the most recently stored grid. Missing or malformed
// content is reported as no grid.
func LoadGrid(store Store) (Grid, bool) {
	data, err := store.Get(GridStoreKey)
	if err != nil {
		return nil, false
	}

	var grid Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, false
	}
	if grid.Validate() != nil {
		return nil, false
	}
	return grid, true
}
