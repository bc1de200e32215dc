package db

import (
	"fmt"
	"time"
)

// Config holds connection and pool settings for the relational store.
type Config struct {
	// Driver selects the backend: "mysql", "postgres" or "sqlite".
	Driver string

	Host     string
	Port     int
	User     string
	Password string
	// Name is the database name, or the file path (":memory:" allowed)
	// when Driver is "sqlite".
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// LogLevel is one of "silent", "error", "warn", "info".
	LogLevel string
}

// DSN builds the driver-specific connection string.
func (c Config) DSN() string {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name)
	case DriverSQLite:
		return c.Name
	default:
		return ""
	}
}
