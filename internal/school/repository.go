package school

import "context"

// Repository defines the school repository API.
// Lookups of non-existing schools return a nil school and a nil error.
type Repository interface {
	// List retrieves at most limit schools ordered by their ID (ascending), skipping the first offset ones.
	// It also returns the total amount of schools; both values reflect the same state of the repository.
	List(ctx context.Context, offset, limit uint64) ([]*School, uint64, error)

	// GetByID retrieves a school by its ID
	GetByID(ctx context.Context, id uint64) (*School, error)

	// Create creates a new school and assigns it the next free ID
	Create(ctx context.Context, name string) (*School, error)

	// Update replaces the name of an existing school
	Update(ctx context.Context, id uint64, name string) (*School, error)
}
