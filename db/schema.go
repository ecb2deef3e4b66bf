// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both SQLite and PostgreSQL accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Persons
CREATE TABLE IF NOT EXISTS person (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_person_email ON person(email);

-- Exams (exam_date is a plain ISO calendar date, YYYY-MM-DD)
CREATE TABLE IF NOT EXISTS exam (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    exam_date TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Results (school grades 1-6, 1 best)
-- One grade per (exam, person): duplicates would double-count
-- leaderboard points, so the store rejects them outright.
CREATE TABLE IF NOT EXISTS result (
    id TEXT PRIMARY KEY,
    exam_id TEXT NOT NULL REFERENCES exam(id) ON DELETE CASCADE,
    person_id TEXT NOT NULL REFERENCES person(id) ON DELETE CASCADE,
    grade INTEGER NOT NULL CHECK (grade >= 1 AND grade <= 6),
    UNIQUE (exam_id, person_id)
);

CREATE INDEX IF NOT EXISTS idx_result_exam_id ON result(exam_id);
CREATE INDEX IF NOT EXISTS idx_result_person_id ON result(person_id);

-- Estimates (self-predicted grades, at most two per exam/person pair)
-- slot is 1 for the before-exam estimate and 2 for the after-exam one.
-- The unique key makes the count-then-insert sequence safe: a racing
-- submission that passed the count check loses on the constraint.
CREATE TABLE IF NOT EXISTS estimate (
    id TEXT PRIMARY KEY,
    exam_id TEXT NOT NULL REFERENCES exam(id) ON DELETE CASCADE,
    person_id TEXT NOT NULL REFERENCES person(id) ON DELETE CASCADE,
    value INTEGER NOT NULL CHECK (value >= 1 AND value <= 6),
    slot INTEGER NOT NULL CHECK (slot IN (1, 2)),
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (exam_id, person_id, slot)
);

CREATE INDEX IF NOT EXISTS idx_estimate_exam_id ON estimate(exam_id);
CREATE INDEX IF NOT EXISTS idx_estimate_pair ON estimate(exam_id, person_id);
`
