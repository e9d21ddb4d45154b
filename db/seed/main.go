package main

import (
	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/pkg/database"
	"github.com/onurcolak/blast-tracker/pkg/logger"
)

// Seeds the delivery ledger with sample recipients across every funnel stage.
func main() {
	cfg := environments.Load()
	logger.Init(cfg.Log.Level)

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedTestData(db); err != nil {
		logger.Fatalf("Failed to seed ledger: %v", err)
	}

	logger.Infof("Ledger seed completed successfully")
}
