// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/middleware"
	"github.com/danielhkuo/gradeboard/models"
)

type ResultHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultHandler(db *sql.DB, cfg cliparse.Config) *ResultHandler {
	return &ResultHandler{db: db, cfg: cfg}
}

// AddResult handles POST /exams/{id}/results
// A second grade for the same exam/person pair is rejected with 409;
// summing duplicates would double-count leaderboard points.
func (h *ResultHandler) AddResult(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	var req models.AddResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var examExists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM exam WHERE id = $1)`, examID).Scan(&examExists)
	if err != nil {
		slog.Error("failed to check exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !examExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}

	var personExists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM person WHERE id = $1)`, req.PersonID).Scan(&personExists)
	if err != nil {
		slog.Error("failed to check person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !personExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Person not found")
		return
	}

	result := models.Result{
		ID:       uuid.NewString(),
		ExamID:   examID,
		PersonID: req.PersonID,
		Grade:    req.Grade,
	}

	_, err = h.db.Exec(`
		INSERT INTO result (id, exam_id, person_id, grade)
		VALUES ($1, $2, $3, $4)
	`, result.ID, result.ExamID, result.PersonID, result.Grade)
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "a result already exists for this person and exam")
			return
		}
		slog.Error("failed to insert result", "error", err, "exam_id", examID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record result")
		return
	}

	slog.Info("result recorded", "exam_id", examID, "person_id", req.PersonID, "grade", req.Grade)

	middleware.JSONResponse(w, http.StatusCreated, result)
}

// GetResultsByExam handles GET /exams/{id}/results
func (h *ResultHandler) GetResultsByExam(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	var examExists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM exam WHERE id = $1)`, examID).Scan(&examExists)
	if err != nil {
		slog.Error("failed to check exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !examExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}

	results, err := h.queryResults(`SELECT id, exam_id, person_id, grade FROM result WHERE exam_id = $1 ORDER BY person_id`, examID)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetResultsByPerson handles GET /persons/{id}/results
func (h *ResultHandler) GetResultsByPerson(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")
	if personID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "person id is required")
		return
	}

	var personExists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM person WHERE id = $1)`, personID).Scan(&personExists)
	if err != nil {
		slog.Error("failed to check person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !personExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Person not found")
		return
	}

	results, err := h.queryResults(`SELECT id, exam_id, person_id, grade FROM result WHERE person_id = $1 ORDER BY exam_id`, personID)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

func (h *ResultHandler) queryResults(query string, arg string) ([]models.Result, error) {
	rows, err := h.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		var res models.Result
		if err := rows.Scan(&res.ID, &res.ExamID, &res.PersonID, &res.Grade); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
