package repositories

import (
	"errors"
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

// CoverCacheAdapter implements tasks.CoverCacher using CoverRepository.
//
// Duplicate inserts are silently ignored (primary key violations).
type CoverCacheAdapter struct {
	repo *CoverRepository
}

// NewCoverCacheAdapter creates a new CoverCacheAdapter with the given repository
func NewCoverCacheAdapter(repo *CoverRepository) *CoverCacheAdapter {
	return &CoverCacheAdapter{repo: repo}
}

// CachedCover returns the cached entry for kind and key.
// Lookup failures other than a miss are reported as a miss.
func (a *CoverCacheAdapter) CachedCover(kind, key string) (*CoverEntry, bool) {
	entry, err := a.repo.Get(kind, key)
	if err != nil {
		return nil, false
	}
	return entry, true
}

// CacheCover stores a resolved cover.
// Returns nil if the key is already cached.
func (a *CoverCacheAdapter) CacheCover(entry CoverEntry) error {
	err := a.repo.Create(&entry)
	if err == nil || isConstraintViolation(err) {
		return nil
	}
	if errors.Is(err, shared.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("failed to cache cover: %w", err)
}
