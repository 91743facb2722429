package inmem

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/schools-server/internal/school"
	"github.com/skybi/schools-server/internal/storage"
)

const tableSchools = "schools"

var errNotInitialized = errors.New("the in-memory storage driver is not initialized")

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableSchools: {
			Name: tableSchools,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &idIndexer{},
				},
			},
		},
	},
}

// Driver represents the in-memory storage driver built using hashicorp/go-memdb
type Driver struct {
	db      *memdb.MemDB
	schools *SchoolRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to create the underlying database.
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.schools = &SchoolRepository{db: db}
	return nil
}

// Schools provides the in-memory school repository implementation
func (driver *Driver) Schools() school.Repository {
	return driver.schools
}

// Close discards the repository implementations and the database
func (driver *Driver) Close() {
	driver.schools = nil
	driver.db = nil
}

// idIndexer indexes the ID field of schools using its big endian representation so that iterating over the index
// yields schools in ascending ID order (memdb.UintFieldIndex uses varints which do not sort bytewise).
type idIndexer struct{}

var _ memdb.SingleIndexer = (*idIndexer)(nil)

func (*idIndexer) FromObject(raw interface{}) (bool, []byte, error) {
	obj, ok := raw.(*school.School)
	if !ok {
		return false, nil, fmt.Errorf("unexpected object of type %T in the schools table", raw)
	}
	return true, encodeID(obj.ID), nil
}

func (*idIndexer) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one argument, got %d", len(args))
	}
	id, ok := args[0].(uint64)
	if !ok {
		return nil, fmt.Errorf("expected an argument of type uint64, got %T", args[0])
	}
	return encodeID(id), nil
}

func encodeID(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}
