package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/skybi/schools-server/internal/school"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) school.Repository {
	t.Helper()
	driver := New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	return driver.Schools()
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	for i := 0; i < 3; i++ {
		obj, err := repo.Create(ctx, fmt.Sprintf("School %d", i))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), obj.ID)
		assert.Equal(t, fmt.Sprintf("School %d", i), obj.Name)
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	created, err := repo.Create(ctx, "Lincoln High School")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		obj, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, obj)
	}

	missing, err := repo.GetByID(ctx, 1000000000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReturnedSchoolsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	created, err := repo.Create(ctx, "Original")
	require.NoError(t, err)
	created.Name = "Mutated"

	obj, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", obj.Name)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	created, err := repo.Create(ctx, "Old Name")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, &school.School{ID: created.ID, Name: "New Name"}, updated)

	obj, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", obj.Name)

	missing, err := repo.Update(ctx, 42, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total, "updating a missing school must not create it")
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	// Create enough schools for the ID encoding to span more than one byte
	for i := 0; i < 300; i++ {
		_, err := repo.Create(ctx, fmt.Sprintf("School %d", i))
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		offset uint64
		limit  uint64
		ids    []uint64
	}{
		{name: "first page", offset: 0, limit: 3, ids: []uint64{0, 1, 2}},
		{name: "middle page", offset: 254, limit: 4, ids: []uint64{254, 255, 256, 257}},
		{name: "partial last page", offset: 298, limit: 10, ids: []uint64{298, 299}},
		{name: "beyond the end", offset: 300, limit: 10, ids: []uint64{}},
		{name: "far beyond the end", offset: 5000, limit: 10, ids: []uint64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			schools, total, err := repo.List(ctx, tc.offset, tc.limit)
			require.NoError(t, err)
			require.NotNil(t, schools)
			assert.Equal(t, uint64(300), total)

			ids := make([]uint64, 0, len(schools))
			for _, obj := range schools {
				ids = append(ids, obj.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestListEmpty(t *testing.T) {
	schools, total, err := newRepository(t).List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Empty(t, schools)
	assert.NotNil(t, schools)
	assert.Zero(t, total)
}

func TestConcurrentCreatesYieldUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	const amount = 200
	ids := make([]uint64, amount)
	var wg sync.WaitGroup
	for i := 0; i < amount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obj, err := repo.Create(ctx, fmt.Sprintf("School %d", i))
			if assert.NoError(t, err) {
				ids[i] = obj.ID
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, uint64(i), id)
	}
}

func TestListObservesConsistentSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			_, _ = repo.Create(ctx, "School")
		}
	}()

	for i := 0; i < 100; i++ {
		schools, total, err := repo.List(ctx, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, total, uint64(len(schools)))
	}
	<-done
}

func TestUninitializedDriver(t *testing.T) {
	repo := New().Schools()
	_, _, err := repo.List(context.Background(), 0, 10)
	assert.ErrorIs(t, err, errNotInitialized)
}
