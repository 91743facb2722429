package cache

import (
	"context"
	"github.com/skybi/schools-server/internal/hashmap"
	"github.com/skybi/schools-server/internal/school"
	"github.com/skybi/schools-server/internal/storage"
	"time"
)

const cleanupInterval = 10 * time.Second

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching
type Driver struct {
	underlying storage.Driver
	lifetime   time.Duration
	schools    *SchoolRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver keeping cached values for the given lifetime
func New(underlying storage.Driver, lifetime time.Duration) *Driver {
	return &Driver{
		underlying: underlying,
		lifetime:   lifetime,
	}
}

// Initialize initializes the underlying driver and the caching repositories
func (driver *Driver) Initialize(ctx context.Context) error {
	if err := driver.underlying.Initialize(ctx); err != nil {
		return err
	}

	schoolCache := hashmap.NewExpiring[uint64, school.School](driver.lifetime)
	schoolCache.ScheduleCleanupTask(cleanupInterval)
	driver.schools = &SchoolRepository{
		repo:  driver.underlying.Schools(),
		cache: schoolCache,
	}

	return nil
}

// Schools provides the caching school repository implementation
func (driver *Driver) Schools() school.Repository {
	return driver.schools
}

// Close stops the cache cleanup, disposes the caching repositories and closes the underlying driver
func (driver *Driver) Close() {
	if driver.schools != nil {
		driver.schools.cache.StopCleanupTask()
		driver.schools = nil
	}
	driver.underlying.Close()
}
