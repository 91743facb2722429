package postgres

import (
	"context"
	"errors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/schools-server/internal/school"
	"math"
)

// SchoolRepository implements the school.Repository interface using PostgreSQL
type SchoolRepository struct {
	db *pgxpool.Pool
}

var _ school.Repository = (*SchoolRepository)(nil)

// List retrieves at most limit schools ordered by their ID (ascending), skipping the first offset ones.
// The count and the page are read inside a single repeatable read transaction so that both reflect the same snapshot.
func (repo *SchoolRepository) List(ctx context.Context, offset, limit uint64) ([]*school.School, uint64, error) {
	query := squirrel.Select("school_id", "name").From("schools").OrderBy("school_id ASC").Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	txn, err := repo.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, 0, err
	}
	defer txn.Rollback(ctx)

	// Fetch the total amount of schools
	var n int64
	if err := txn.QueryRow(ctx, "SELECT COUNT(*) FROM schools").Scan(&n); err != nil {
		return nil, 0, err
	}
	if n == 0 || offset >= uint64(n) {
		return []*school.School{}, uint64(n), nil
	}

	// Fetch the requested page
	rows, err := txn.Query(ctx, sql, vals...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	schools := []*school.School{}
	for rows.Next() {
		obj, err := repo.rowToSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := txn.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return schools, uint64(n), nil
}

// GetByID retrieves a school by its ID
func (repo *SchoolRepository) GetByID(ctx context.Context, id uint64) (*school.School, error) {
	if id > math.MaxInt64 {
		return nil, nil
	}

	row := repo.db.QueryRow(ctx, "SELECT school_id, name FROM schools WHERE school_id = $1", int64(id))
	obj, err := repo.rowToSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new school and assigns it the next free ID
func (repo *SchoolRepository) Create(ctx context.Context, name string) (*school.School, error) {
	row := repo.db.QueryRow(ctx, "INSERT INTO schools (name) VALUES ($1) RETURNING school_id, name", name)
	return repo.rowToSchool(row)
}

// Update replaces the name of an existing school
func (repo *SchoolRepository) Update(ctx context.Context, id uint64, name string) (*school.School, error) {
	if id > math.MaxInt64 {
		return nil, nil
	}

	sql, vals, err := squirrel.Update("schools").
		Set("name", name).
		Where(squirrel.Eq{"school_id": int64(id)}).
		Suffix("RETURNING school_id, name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	obj, err := repo.rowToSchool(repo.db.QueryRow(ctx, sql, vals...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

func (repo *SchoolRepository) rowToSchool(row pgx.Row) (*school.School, error) {
	var id int64
	obj := new(school.School)
	if err := row.Scan(&id, &obj.Name); err != nil {
		return nil, err
	}
	obj.ID = uint64(id)
	return obj, nil
}
