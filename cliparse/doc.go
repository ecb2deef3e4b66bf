// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - Seed: Load sample data at startup

# CLI Flags

	-p    Server port
	-d    Database URL
	-t    Database type
	-seed Seed sample data at startup

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SEED_SAMPLE_DATA → -seed

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be "sqlite" or "postgres"

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
