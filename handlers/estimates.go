// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/middleware"
	"github.com/danielhkuo/gradeboard/models"
)

type EstimateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time // injectable for tests
}

func NewEstimateHandler(db *sql.DB, cfg cliparse.Config) *EstimateHandler {
	return &EstimateHandler{db: db, cfg: cfg, now: time.Now}
}

// SubmitEstimate handles POST /exams/{id}/estimates
// The window decision itself is pure (DecideEstimateSubmission); this
// handler fetches the inputs, runs the decision inside a transaction and
// persists only on allow. The UNIQUE (exam_id, person_id, slot) key
// backstops the count-then-insert sequence against concurrent racers.
func (h *EstimateHandler) SubmitEstimate(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	// Parse request
	var req models.SubmitEstimateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Look up the exam's stored date
	var examDateStr string
	err := h.db.QueryRow(`SELECT exam_date FROM exam WHERE id = $1`, examID).Scan(&examDateStr)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		slog.Error("failed to query exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The person must exist before the window rules are consulted
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

	examDate, err := ParseExamDate(examDateStr)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Count, decide and insert inside one transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var priorCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM estimate WHERE exam_id = $1 AND person_id = $2
	`, examID, req.PersonID).Scan(&priorCount)
	if err != nil {
		slog.Error("failed to count estimates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	decision := DecideEstimateSubmission(examDate, h.now(), priorCount)
	if !decision.Allowed {
		middleware.ErrorResponse(w, http.StatusBadRequest, decision.Reason)
		return
	}

	estimate := models.Estimate{
		ID:          uuid.NewString(),
		ExamID:      examID,
		PersonID:    req.PersonID,
		Value:       req.Value,
		Slot:        decision.Slot,
		SubmittedAt: h.now(),
	}

	_, err = tx.Exec(`
		INSERT INTO estimate (id, exam_id, person_id, value, slot, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, estimate.ID, estimate.ExamID, estimate.PersonID, estimate.Value, estimate.Slot, estimate.SubmittedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent submission took this slot first
			middleware.ErrorResponse(w, http.StatusConflict, "estimate already submitted for this window")
			return
		}
		slog.Error("failed to insert estimate", "error", err, "exam_id", examID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit estimate")
		return
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "estimate already submitted for this window")
			return
		}
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit estimate")
		return
	}

	message := "First estimate submitted"
	if estimate.Slot == 2 {
		message = "Second estimate submitted"
	}

	slog.Info("estimate submitted", "exam_id", examID, "person_id", req.PersonID, "slot", estimate.Slot)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitEstimateResponse{
		Estimate: estimate,
		Message:  message,
	})
}

// GetEstimatesByExam handles GET /exams/{id}/estimates
func (h *EstimateHandler) GetEstimatesByExam(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT id, exam_id, person_id, value, slot, submitted_at
		FROM estimate
		WHERE exam_id = $1
		ORDER BY person_id, slot
	`, examID)
	if err != nil {
		slog.Error("failed to query estimates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	estimates := []models.Estimate{}
	for rows.Next() {
		var e models.Estimate
		if err := rows.Scan(&e.ID, &e.ExamID, &e.PersonID, &e.Value, &e.Slot, &e.SubmittedAt); err != nil {
			slog.Error("failed to scan estimate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		estimates = append(estimates, e)
	}

	middleware.JSONResponse(w, http.StatusOK, estimates)
}

// isUniqueViolation reports whether an error came from a unique
// constraint, for both the sqlite and postgres drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
