package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	StorageDriverInMemory = "inmem"
	StorageDriverPostgres = "postgres"
)

var (
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrMissingPostgresDSN   = errors.New("the postgres storage driver requires a DSN")
	ErrInvalidPublicBaseURL = errors.New("the public base URL has to be an absolute http(s) URL")
	ErrInvalidDocsDir       = errors.New("the docs directory has to be an existing directory")
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"development"`

	ListenAddress  string   `split_words:"true" default:":8080"`
	PublicBaseURL  string   `split_words:"true"`
	AllowedOrigins []string `split_words:"true" default:"http://*,https://*"`

	StorageDriver string        `split_words:"true" default:"inmem"`
	PostgresDSN   string        `split_words:"true"`
	CacheLifetime time.Duration `split_words:"true" default:"5m"`

	Seed     bool   `default:"true"`
	SeedFile string `split_words:"true"`

	// DocsDir holds static API documentation served under /docs/; empty disables the route
	DocsDir string `split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("schools", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values that cannot be used to start the application
func (config *Config) Validate() error {
	switch config.StorageDriver {
	case StorageDriverInMemory:
	case StorageDriverPostgres:
		if config.PostgresDSN == "" {
			return ErrMissingPostgresDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, config.StorageDriver)
	}

	if config.PublicBaseURL != "" {
		if _, err := config.ParsePublicBaseURL(); err != nil {
			return err
		}
	}

	if config.DocsDir != "" {
		info, err := os.Stat(config.DocsDir)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDocsDir, err.Error())
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrInvalidDocsDir, config.DocsDir)
		}
	}
	return nil
}

// ParsePublicBaseURL parses the configured public base URL.
// A nil URL is returned if none is configured.
func (config *Config) ParsePublicBaseURL() (*url.URL, error) {
	if config.PublicBaseURL == "" {
		return nil, nil
	}
	parsed, err := url.Parse(strings.TrimSuffix(config.PublicBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPublicBaseURL, err.Error())
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidPublicBaseURL
	}
	return parsed, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "production")
}

// String renders the configuration for logging without exposing the database credentials
func (config Config) String() string {
	config.PostgresDSN = redactDSN(config.PostgresDSN)
	type plain Config
	return fmt.Sprintf("%+v", plain(config))
}

func redactDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.User == nil {
		return dsn
	}
	if _, ok := parsed.User.Password(); ok {
		parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	}
	return parsed.String()
}
