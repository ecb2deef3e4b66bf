// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Gradeboard API server.

Gradeboard tracks exams, graded results (school grades 1-6, 1 best),
participants' self-estimates, and a points leaderboard derived from
the grades.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:gradeboard.db go run main.go

Or with flags:

	go run main.go -p 3419 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SEED_SAMPLE_DATA (-seed): load sample persons, exams and results at startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, exams, results, estimates, leaderboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and validation
  - auth: Password hashing and session tokens
  - db: Schema creation and sample-data seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
