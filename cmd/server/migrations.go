package main

import (
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/ali-mahmoud24/bookly-api/internal/config"
	"github.com/ali-mahmoud24/bookly-api/internal/platform/logger"
	"github.com/ali-mahmoud24/bookly-api/migrations"
)

// runMigrate applies schema migrations in the given direction.
// Supported directions are "up", "down" and "status".
func runMigrate(direction string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection", "error", closeErr)
		}
	}()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch direction {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	log.Info("migrations complete", "direction", direction)
	return nil
}
