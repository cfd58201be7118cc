package main

import (
	"log"

	"github.com/tmarek/nutrilog/backend/config"
	"github.com/tmarek/nutrilog/backend/internal/database"
)

// Standalone schema migration runner for deployments that migrate before
// rolling the API.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}
