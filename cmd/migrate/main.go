package main

import (
	"context" // Context for migration

	"deluxe_membership/internal/config" // Configuration
	"deluxe_membership/internal/db"     // Database

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	gdb, err := db.Open(cfg.DSN(), !cfg.IsProd)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := db.Migrate(context.Background(), gdb); err != nil {
		logrus.Fatal(err)
	}
}
