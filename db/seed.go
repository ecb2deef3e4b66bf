// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gradeboard/auth"
)

// SeedSampleData loads a small demo data set: three persons, two exams
// and a full grid of results. Intended for local development; call once
// at startup behind the -seed flag. Skips loading if any person exists.
func SeedSampleData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM person`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash sample password: %w", err)
	}

	persons := []struct {
		id, name, email string
	}{
		{uuid.NewString(), "Matti Koenis", "matti.koenis@example.com"},
		{uuid.NewString(), "Max Mueller", "max.mueller@example.com"},
		{uuid.NewString(), "Hans Gross", "hans.gross@example.com"},
	}
	for _, p := range persons {
		_, err := db.Exec(`
			INSERT INTO person (id, name, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, p.id, p.name, p.email, hash, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed person %s: %w", p.email, err)
		}
	}

	exams := []struct {
		id, title, date string
	}{
		{uuid.NewString(), "Math Exam Equations", "2025-11-15"},
		{uuid.NewString(), "Math Exam Variables", "2025-09-05"},
	}
	for _, e := range exams {
		_, err := db.Exec(`
			INSERT INTO exam (id, title, exam_date, created_at)
			VALUES ($1, $2, $3, $4)
		`, e.id, e.title, e.date, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed exam %s: %w", e.title, err)
		}
	}

	grades := []struct {
		examID, personID string
		grade            int
	}{
		{exams[0].id, persons[0].id, 3},
		{exams[0].id, persons[1].id, 2},
		{exams[0].id, persons[2].id, 5},
		{exams[1].id, persons[0].id, 4},
		{exams[1].id, persons[1].id, 5},
		{exams[1].id, persons[2].id, 3},
	}
	for _, g := range grades {
		_, err := db.Exec(`
			INSERT INTO result (id, exam_id, person_id, grade)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), g.examID, g.personID, g.grade)
		if err != nil {
			return fmt.Errorf("failed to seed result: %w", err)
		}
	}

	return nil
}
