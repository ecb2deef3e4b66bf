// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and sample-data seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between SQLite and PostgreSQL.

# Tables

The schema includes:

  - person: Registered participants with bcrypt password hashes
  - exam: Exams with a plain ISO calendar date (YYYY-MM-DD)
  - result: One grade (1-6) per exam/person pair
  - estimate: Self-predicted grades, at most two per exam/person pair

# Relationships

	exam 1──* result
	exam 1──* estimate
	person 1──* result
	person 1──* estimate

All foreign keys use ON DELETE CASCADE, so deleting an exam removes its
results and estimates.

# Constraints

  - person.email is unique
  - result is unique per (exam_id, person_id): a duplicate grade would
    silently double-count leaderboard points
  - estimate is unique per (exam_id, person_id, slot): slot 1 is the
    before-exam estimate, slot 2 the after-exam one; the key closes the
    count-then-insert race on concurrent submissions

# Sample Data

SeedSampleData loads three persons, two exams and six results for local
development. It is a no-op when persons already exist and is only invoked
from main behind the -seed flag, never from the request path.
*/
package db
