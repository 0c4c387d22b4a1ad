// Command migrate applies or rolls back the database schema.
package main

import (
	"flag"
	"log"

	"github.com/ignite/mailroom/internal/config"
	"github.com/ignite/mailroom/internal/database"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if *down {
		if err := database.Rollback(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rolled back one migration")
		return
	}

	if err := database.Migrate(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
