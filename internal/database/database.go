package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sjperalta/prestamos-api/internal/models"
	pkgLogger "github.com/sjperalta/prestamos-api/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Connect opens the database named by databaseURL. Postgres URLs are used in
// production; "sqlite:<dsn>" selects the embedded driver for local runs.
func Connect(databaseURL string) (*gorm.DB, error) {
	logLevel := logger.Warn
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Info
	}

	cfg := &gorm.Config{
		Logger:                 pkgLogger.NewGormLogger(logLevel, 200*time.Millisecond),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	if dsn, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		return OpenSQLite(dsn, cfg)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenSQLite opens a SQLite database with a single connection. SQLite allows
// one writer at a time and an in-memory database lives only as long as its
// connection, so the pool is pinned to one connection that never expires.
func OpenSQLite(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{
			Logger:                 pkgLogger.NewGormLogger(logger.Warn, 200*time.Millisecond),
			SkipDefaultTransaction: true,
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every model the API persists.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ClientType{},
		&models.Client{},
		&models.Loan{},
		&models.Installment{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
