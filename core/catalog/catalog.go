package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable indicates the catalog file cannot be opened or read.
// All errors returned by Open wrap this sentinel.
var ErrUnavailable = errors.New("catalog unavailable")

// Catalog provides read-only access to a Lightroom Classic catalog.
type Catalog struct {
	db *gorm.DB
}

// Open opens the .lrcat SQLite file in read-only mode and verifies that it
// carries the expected Lightroom schema. The catalog is never written to,
// so a catalog currently open in Lightroom can still be read.
func Open(cfg Config) (*Catalog, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: no catalog path configured", ErrUnavailable)
	}

	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// mode=ro keeps us from ever acquiring a write lock on the catalog.
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", cfg.Path)

	// Suppress GORM logging for cleaner optional warnings in main logger
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// A single connection is plenty for a local file and avoids SQLite
	// lock contention between concurrent readers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c := &Catalog{db: db}
	if err := c.validateSchema(); err != nil {
		return nil, err
	}

	return c, nil
}

// Close releases the underlying SQLite connection.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
