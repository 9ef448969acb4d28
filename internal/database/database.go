package database

import (
	"context"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/vocabdaily/internal/database/migrations"
)

// SchemaVersion is the goose version the store expects after migrating.
const SchemaVersion = 2

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, logQueries bool) (*Database, error) {
	logLevel := logger.Warn
	if logQueries {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql handle: %w", err)
	}
	// SQLite allows one writer; a single connection keeps writes in commit order
	// and lets ":memory:" databases survive across calls.
	sqlDB.SetMaxOpenConns(1)

	database := &Database{DB: db}

	if err := database.Migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// Migrate applies the embedded goose migrations.
func (d *Database) Migrate(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, ".")
}

// Version returns the currently applied schema version.
func (d *Database) Version(ctx context.Context) (int64, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
