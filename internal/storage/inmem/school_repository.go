package inmem

import (
	"context"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/schools-server/internal/school"
)

// SchoolRepository implements the school.Repository interface using an in-memory database.
// memdb allows only one write transaction at a time, so ID assignment and updates are serialized while reads operate
// on immutable snapshots.
type SchoolRepository struct {
	db     *memdb.MemDB
	nextID uint64
}

var _ school.Repository = (*SchoolRepository)(nil)

// List retrieves at most limit schools ordered by their ID (ascending), skipping the first offset ones
func (repo *SchoolRepository) List(_ context.Context, offset, limit uint64) ([]*school.School, uint64, error) {
	if repo == nil {
		return nil, 0, errNotInitialized
	}

	txn := repo.db.Txn(false)
	it, err := txn.Get(tableSchools, "id")
	if err != nil {
		return nil, 0, err
	}

	schools := []*school.School{}
	var n uint64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if n >= offset && uint64(len(schools)) < limit {
			schools = append(schools, copySchool(obj.(*school.School)))
		}
		n++
	}

	return schools, n, nil
}

// GetByID retrieves a school by its ID
func (repo *SchoolRepository) GetByID(_ context.Context, id uint64) (*school.School, error) {
	if repo == nil {
		return nil, errNotInitialized
	}

	txn := repo.db.Txn(false)
	obj, err := txn.First(tableSchools, "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return copySchool(obj.(*school.School)), nil
}

// Create creates a new school and assigns it the next free ID
func (repo *SchoolRepository) Create(_ context.Context, name string) (*school.School, error) {
	if repo == nil {
		return nil, errNotInitialized
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()

	obj := &school.School{
		ID:   repo.nextID,
		Name: name,
	}
	if err := txn.Insert(tableSchools, obj); err != nil {
		return nil, err
	}
	repo.nextID++
	txn.Commit()

	return copySchool(obj), nil
}

// Update replaces the name of an existing school
func (repo *SchoolRepository) Update(_ context.Context, id uint64, name string) (*school.School, error) {
	if repo == nil {
		return nil, errNotInitialized
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableSchools, "id", id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	// Stored objects must not be modified in place as older snapshots still reference them
	obj := &school.School{
		ID:   id,
		Name: name,
	}
	if err := txn.Insert(tableSchools, obj); err != nil {
		return nil, err
	}
	txn.Commit()

	return copySchool(obj), nil
}

func copySchool(obj *school.School) *school.School {
	cpy := *obj
	return &cpy
}
