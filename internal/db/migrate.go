package db

import (
	"context" // Context for seeding
	"fmt"     // Error wrapping

	"deluxe_membership/internal/challenge" // Challenge seeding
	"deluxe_membership/internal/domain"    // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Open connects to MySQL through GORM
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema and seeds the challenge table
func Migrate(ctx context.Context, db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.WithContext(ctx).AutoMigrate(
		&domain.User{},
		&domain.Wallet{},
		&domain.Card{},
		&domain.Transaction{},
		&domain.Challenge{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := challenge.NewRegistry(db).Seed(ctx, challenge.Defaults...); err != nil {
		return err
	}
	logrus.Info("Migration completed.")
	return nil
}
