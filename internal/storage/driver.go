package storage

import (
	"context"
	"github.com/skybi/schools-server/internal/school"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Schools provides a school repository implementation
	Schools() school.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
