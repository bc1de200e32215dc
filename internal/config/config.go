package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/crud-services/pkg/db"
)

// Config holds the configuration for one service process.
type Config struct {
	Environment string
	Addr        string
	Database    db.Config
}

// Load loads configuration from the environment, after merging in a .env
// file when one is present. defaultAddr is the listen address used when
// ADDR is unset, so each service can carry its own default port.
func Load(defaultAddr string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getenv("APP_ENV", "development"),
		Addr:        getenv("ADDR", defaultAddr),
		Database: db.Config{
			Driver:          getenv("DB_DRIVER", db.DriverSQLite),
			Host:            getenv("DB_HOST", "localhost"),
			Port:            getenvInt("DB_PORT", 0),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getenv("DB_NAME", ":memory:"),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getenvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			LogLevel:        getenv("DB_LOG_LEVEL", "error"),
		},
	}

	if cfg.Database.Port == 0 {
		switch cfg.Database.Driver {
		case db.DriverMySQL:
			cfg.Database.Port = 3306
		case db.DriverPostgres:
			cfg.Database.Port = 5432
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is complete for the target
// environment. Development and test environments may run on an in-memory
// SQLite database; production and staging require a real server backend.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverMySQL, db.DriverPostgres, db.DriverSQLite:
	default:
		return errors.New("DB_DRIVER must be one of mysql, postgres, sqlite")
	}

	if c.Environment == "production" || c.Environment == "staging" {
		if c.Database.Driver == db.DriverSQLite {
			return errors.New("DB_DRIVER sqlite is not allowed in " + c.Environment)
		}

		var missing []string
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return errors.New("missing required environment variables for " + c.Environment + ": " + strings.Join(missing, ", "))
		}
	}

	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
