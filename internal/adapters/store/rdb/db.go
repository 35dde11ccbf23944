package rdb

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

const defaultSQLiteDSN = "./cloud-api.db"

// OpenFromURL opens a GORM DB based on a simple db-url string.
// Supported:
//   - sqlite:<dsn>   e.g., sqlite:./cloud-api.db or sqlite::memory:
//   - sqlite3:<dsn>  alias of sqlite
func OpenFromURL(dbURL string) (*gorm.DB, error) {
	var dsn string
	switch {
	case strings.HasPrefix(dbURL, "sqlite:"):
		dsn = strings.TrimPrefix(dbURL, "sqlite:")
	case strings.HasPrefix(dbURL, "sqlite3:"):
		dsn = strings.TrimPrefix(dbURL, "sqlite3:")
	default:
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("unsupported db scheme: %s", dbURL))
	}
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStoreError, fmt.Sprintf("failed to open database %s", dbURL))
	}
	return db, nil
}

// AutoMigrate applies schema migrations for all RDB models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ApplicationRecord{}); err != nil {
		return errors.Wrap(err, errors.CodeStoreError, "failed to migrate database schema")
	}
	return nil
}
