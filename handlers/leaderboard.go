// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/middleware"
	"github.com/danielhkuo/gradeboard/models"
)

type LeaderboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLeaderboardHandler(db *sql.DB, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, cfg: cfg}
}

// PointsForGrade converts a school grade into leaderboard points.
// A grade of 1 is worth 50 points, a grade of 6 worth 0. Grades above
// 6 clamp to 0 instead of going negative.
func PointsForGrade(grade int) int {
	points := (models.GradeWorst - grade) * models.PointsPerStep
	if points < 0 {
		return 0
	}
	return points
}

// ComputeLeaderboard ranks every person by total points over their
// results. Persons without results appear with 0 points. Entries are
// sorted points-descending, ties broken by person id ascending so the
// ranking is reproducible; ranks are the contiguous ordinal 1..N.
func ComputeLeaderboard(persons []models.Person, resultsByPerson map[string][]models.Result) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(persons))
	for _, person := range persons {
		points := 0
		for _, result := range resultsByPerson[person.ID] {
			points += PointsForGrade(result.Grade)
		}
		entries = append(entries, models.LeaderboardEntry{
			PersonID: person.ID,
			Name:     person.Name,
			Points:   points,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].PersonID < entries[j].PersonID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

// GetLeaderboard handles GET /leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	persons, err := getAllPersons(h.db)
	if err != nil {
		slog.Error("failed to query persons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resultsByPerson, err := getResultsByPerson(h.db)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ComputeLeaderboard(persons, resultsByPerson))
}

// getAllPersons loads every registered person
func getAllPersons(db *sql.DB) ([]models.Person, error) {
	rows, err := db.Query(`
		SELECT id, name, email, password_hash, created_at
		FROM person
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	persons := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// getResultsByPerson loads all results in one pass, grouped by person
func getResultsByPerson(db *sql.DB) (map[string][]models.Result, error) {
	rows, err := db.Query(`
		SELECT id, exam_id, person_id, grade
		FROM result
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.Result)
	for rows.Next() {
		var res models.Result
		if err := rows.Scan(&res.ID, &res.ExamID, &res.PersonID, &res.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		grouped[res.PersonID] = append(grouped[res.PersonID], res)
	}
	return grouped, rows.Err()
}
