package cache

import (
	"context"
	"github.com/skybi/schools-server/internal/hashmap"
	"github.com/skybi/schools-server/internal/school"
	"sync"
)

// SchoolRepository implements the school.Repository interface in order to implement caching.
// Schools are cached by value so callers can never modify cached entries.
type SchoolRepository struct {
	repo  school.Repository
	cache *hashmap.ExpiringMap[uint64, school.School]

	// writes counts the cache writes made by Create and Update.
	// A GetByID miss only fills the cache if no write happened while it read from the underlying repository.
	mu     sync.Mutex
	writes uint64
}

var _ school.Repository = (*SchoolRepository)(nil)

// List retrieves at most limit schools ordered by their ID (ascending), skipping the first offset ones.
// Pages are always read from the underlying repository and never fill the cache, as a page may be older than an
// update that finished while it was being read.
func (repo *SchoolRepository) List(ctx context.Context, offset, limit uint64) ([]*school.School, uint64, error) {
	return repo.repo.List(ctx, offset, limit)
}

// GetByID retrieves a school by its ID
func (repo *SchoolRepository) GetByID(ctx context.Context, id uint64) (*school.School, error) {
	cached, ok := repo.cache.Lookup(id)
	if ok {
		return &cached, nil
	}

	repo.mu.Lock()
	writes := repo.writes
	repo.mu.Unlock()

	obj, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.fill(obj, writes)
	}
	return obj, nil
}

// Create creates a new school and assigns it the next free ID
func (repo *SchoolRepository) Create(ctx context.Context, name string) (*school.School, error) {
	obj, err := repo.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	repo.write(obj.ID, obj)
	return obj, nil
}

// Update replaces the name of an existing school
func (repo *SchoolRepository) Update(ctx context.Context, id uint64, name string) (*school.School, error) {
	obj, err := repo.repo.Update(ctx, id, name)
	if err != nil {
		repo.write(id, nil)
		return nil, err
	}
	repo.write(id, obj)
	return obj, nil
}

// write caches obj under id, or drops the cached entry if obj is nil
func (repo *SchoolRepository) write(id uint64, obj *school.School) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.writes++
	if obj == nil {
		repo.cache.Unset(id)
		return
	}
	repo.cache.Set(id, *obj)
}

// fill caches a value read from the underlying repository unless a write happened since the read started
func (repo *SchoolRepository) fill(obj *school.School, writes uint64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.writes != writes {
		return
	}
	repo.cache.Set(obj.ID, *obj)
}
