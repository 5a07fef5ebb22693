package db

import (
	"fmt"

	"gainz_journal/internal/config"
	"gainz_journal/internal/domain" // Importing domain models

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to the relational store configured by cfg
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate performs automatic migration for the database schema.
// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Workout{},
		&domain.Exercise{},
		&domain.Set{},
	)
}
