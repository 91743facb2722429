package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/skybi/schools-server/internal/school"
	"github.com/skybi/schools-server/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver stores schools in a PostgreSQL database
type Driver struct {
	dsn     string
	db      *pgxpool.Pool
	schools *SchoolRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new PostgreSQL storage driver for the database the DSN points to.
// Nothing is connected until Initialize is called.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize brings the database schema up to date and opens the connection pool
func (driver *Driver) Initialize(ctx context.Context) error {
	if err := driver.migrateSchema(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(driver.dsn)
	if err != nil {
		return err
	}
	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	driver.db = pool
	driver.schools = &SchoolRepository{db: pool}
	return nil
}

func (driver *Driver) migrateSchema() error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	log.Debug().Uint("version", version).Bool("dirty", dirty).Msg("database schema is up to date")
	return nil
}

// Schools provides the PostgreSQL school repository
func (driver *Driver) Schools() school.Repository {
	return driver.schools
}

// Close closes the connection pool; the driver may be initialized again afterwards
func (driver *Driver) Close() {
	driver.schools = nil
	if driver.db != nil {
		driver.db.Close()
		driver.db = nil
	}
}
