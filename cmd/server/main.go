package main

import (
	"context"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/schools-server/internal/api"
	"github.com/skybi/schools-server/internal/config"
	"github.com/skybi/schools-server/internal/seed"
	"github.com/skybi/schools-server/internal/storage"
	"github.com/skybi/schools-server/internal/storage/cache"
	"github.com/skybi/schools-server/internal/storage/inmem"
	"github.com/skybi/schools-server/internal/storage/postgres"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		// Production logs are consumed by machines
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Stringer("config", cfg).Msg("")

	// Initialize the storage driver
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	driver := buildStorageDriver(cfg)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	defer driver.Close()

	// Populate an empty school collection
	if cfg.Seed {
		if err := seedSchools(cfg, driver); err != nil {
			log.Fatal().Err(err).Msg("could not seed the school collection")
		}
	}

	// Start up the schools API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the schools API...")
	service := &api.Service{
		Config:  cfg,
		Storage: driver,
	}
	apiErrs := make(chan error, 1)
	if err := service.Startup(apiErrs); err != nil {
		log.Fatal().Err(err).Msg("could not start up the schools API")
	}
	defer func() {
		log.Info().Msg("shutting down the schools API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated or the API to fail
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	select {
	case <-shutdown:
	case err := <-apiErrs:
		log.Error().Err(err).Msg("the schools API raised an unexpected error")
	}
}

func buildStorageDriver(cfg *config.Config) storage.Driver {
	var driver storage.Driver
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		driver = postgres.New(cfg.PostgresDSN)
	default:
		driver = inmem.New()
	}
	if cfg.CacheLifetime > 0 {
		driver = cache.New(driver, cfg.CacheLifetime)
	}
	return driver
}

func seedSchools(cfg *config.Config, driver storage.Driver) error {
	names := seed.DefaultNames()
	if cfg.SeedFile != "" {
		var err error
		names, err = seed.ReadNamesFromFile(cfg.SeedFile)
		if err != nil {
			return err
		}
	}

	n, err := seed.Populate(context.Background(), driver.Schools(), names)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("amount", n).Msg("seeded the school collection")
	}
	return nil
}
