// Package store persists the build cache as a JSON document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildCacheStore = (*Store)(nil)

// Store implements ports.BuildCacheStore using a JSON file per project.
// It remembers a digest of the bytes last read from or written to each path
// and skips writes that would not change the file.
type Store struct {
	logger  ports.Logger
	mu      sync.Mutex
	digests map[string]uint64
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{
		logger:  logger,
		digests: make(map[string]uint64),
	}
}

// Load reads the cache at path. A missing or malformed cache yields nil, nil.
func (s *Store) Load(path string) (*domain.BuildCache, error) {
	path = filepath.Clean(path)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		s.forget(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.digests[path] = xxhash.Sum64(data)
	s.mu.Unlock()

	var cache domain.BuildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring malformed build cache %s: %v", path, err))
		return nil, nil
	}
	cache.Normalize()

	return &cache, nil
}

// Save atomically replaces the cache at path.
func (s *Store) Save(path string, cache *domain.BuildCache) error {
	path = filepath.Clean(path)

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}
	data = append(data, '\n')
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.digests[path]; ok && prev == sum {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	if err := writeAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	s.digests[path] = sum
	return nil
}

func (s *Store) forget(path string) {
	s.mu.Lock()
	delete(s.digests, path)
	s.mu.Unlock()
}

// writeAtomic writes data to a temporary file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
