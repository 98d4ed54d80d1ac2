package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     DatabaseType
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

// SQLiteConfig holds SQLite specific configuration
type SQLiteConfig struct {
	Path string
}

// PostgresConfig holds PostgreSQL specific configuration
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
	TimeZone string
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypePostgreSQL:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Postgres.Host,
			c.Postgres.Username,
			c.Postgres.Password,
			c.Postgres.Database,
			c.Postgres.Port,
			c.Postgres.SSLMode,
			c.Postgres.TimeZone,
		)
	default:
		return c.SQLite.Path
	}
}

// GetDefaultDatabaseConfig returns default database configuration
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: GetDBPath(),
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "blindhunter",
			Username: "blindhunter",
			Password: "",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
	}
}

// GetDatabaseConfig builds the database configuration from BH_DB_* variables
// on top of the defaults.
func GetDatabaseConfig() *DatabaseConfig {
	c := GetDefaultDatabaseConfig()
	if v := os.Getenv("BH_DB_TYPE"); v != "" {
		c.Type = DatabaseType(v)
	}
	if v := os.Getenv("BH_DB_HOST"); v != "" {
		c.Postgres.Host = v
	}
	if v := os.Getenv("BH_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Postgres.Port = port
		} else {
			c.Postgres.Port = -1
		}
	}
	if v := os.Getenv("BH_DB_NAME"); v != "" {
		c.Postgres.Database = v
	}
	if v := os.Getenv("BH_DB_USER"); v != "" {
		c.Postgres.Username = v
	}
	if v := os.Getenv("BH_DB_PASSWORD"); v != "" {
		c.Postgres.Password = v
	}
	if v := os.Getenv("BH_DB_SSLMODE"); v != "" {
		c.Postgres.SSLMode = v
	}
	if v := os.Getenv("BH_DB_TIMEZONE"); v != "" {
		c.Postgres.TimeZone = v
	}
	return c
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
	case DatabaseTypePostgreSQL:
		if c.Postgres.Host == "" {
			return fmt.Errorf("PostgreSQL host cannot be empty")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("PostgreSQL database name cannot be empty")
		}
		if c.Postgres.Username == "" {
			return fmt.Errorf("PostgreSQL username cannot be empty")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("PostgreSQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists creates the folder holding the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.IsSQLite() {
		return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
	}
	return nil
}
