package ports

import "go.trai.ch/kiln/internal/core/domain"

// BuildCacheStore defines the interface for persisting the build cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildCacheStore interface {
	// Load reads the cache at path.
	// Returns nil, nil if the cache is missing or malformed.
	Load(path string) (*domain.BuildCache, error)

	// Save atomically replaces the cache at path.
	Save(path string, cache *domain.BuildCache) error
}
