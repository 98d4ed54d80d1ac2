// Package database owns the GORM connection: opening SQLite or PostgreSQL,
// migrating the schema and small helpers around gorm errors.
package database

import (
	"bytes"
	"errors"
	"io"
	"log"

	"github.com/blindhunter/blindhunter/config"
	"github.com/blindhunter/blindhunter/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbType config.DatabaseType
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Company{},
		&model.Review{},
		&model.Setting{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func gormConfig() *gorm.Config {
	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}
	return &gorm.Config{
		Logger: gormLogger,
		// Map driver unique/foreign-key errors onto gorm.ErrDuplicatedKey and
		// gorm.ErrForeignKeyViolated.
		TranslateError: true,
	}
}

// InitDB opens the SQLite database at dbPath and migrates the schema.
func InitDB(dbPath string) error {
	c := config.GetDefaultDatabaseConfig()
	c.SQLite.Path = dbPath
	return Open(c)
}

// Open connects using the given configuration and migrates the schema.
func Open(c *config.DatabaseConfig) error {
	if err := c.ValidateConfig(); err != nil {
		return err
	}
	if err := c.EnsureDirectoryExists(); err != nil {
		return err
	}

	var dialector gorm.Dialector
	if c.IsPostgreSQL() {
		dialector = postgres.Open(c.GetDSN())
	} else {
		// foreign_keys is a per-connection pragma, so it goes in the DSN.
		dsn := c.GetDSN() + "?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
		dialector = sqlite.Open(dsn)
	}

	var err error
	db, err = gorm.Open(dialector, gormConfig())
	if err != nil {
		return err
	}
	dbType = c.Type

	return initModels()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicatedKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint flushes the SQLite WAL into the main database file.
// It is a no-op for PostgreSQL.
func Checkpoint() error {
	if db == nil || dbType != config.DatabaseTypeSQLite {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
