package main

import (
	"fmt"
	"os"

	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/repository/postgres"
	"github.com/pratik-mahalle/numera/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Driver == config.DriverMemory {
		fmt.Println("In-memory store selected, nothing to migrate")
		return
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database successfully\n", cfg.Database.Driver)

	applied, err := postgres.RunMigrations(db, migrations.GetFS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Schema is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s) successfully\n", applied)
}
