// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/middleware"
	"github.com/danielhkuo/gradeboard/models"
)

type ExamHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time // injectable for tests
}

func NewExamHandler(db *sql.DB, cfg cliparse.Config) *ExamHandler {
	return &ExamHandler{db: db, cfg: cfg, now: time.Now}
}

// GetAllExams handles GET /exams
func (h *ExamHandler) GetAllExams(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, exam_date, created_at
		FROM exam
		ORDER BY exam_date, id
	`)
	if err != nil {
		slog.Error("failed to query exams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	exams := []models.Exam{}
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.CreatedAt); err != nil {
			slog.Error("failed to scan exam", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		exams = append(exams, e)
	}

	middleware.JSONResponse(w, http.StatusOK, exams)
}

// GetExam handles GET /exams/{id}
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	var exam models.Exam
	err := h.db.QueryRow(`
		SELECT id, title, exam_date, created_at
		FROM exam
		WHERE id = $1
	`, examID).Scan(&exam.ID, &exam.Title, &exam.Date, &exam.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		slog.Error("failed to query exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, exam)
}

// CreateExam handles POST /exams
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	exam := models.Exam{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Date:      req.Date,
		CreatedAt: h.now(),
	}

	_, err := h.db.Exec(`
		INSERT INTO exam (id, title, exam_date, created_at)
		VALUES ($1, $2, $3, $4)
	`, exam.ID, exam.Title, exam.Date, exam.CreatedAt)
	if err != nil {
		slog.Error("failed to insert exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create exam")
		return
	}

	slog.Info("exam created", "exam_id", exam.ID, "title", exam.Title)

	middleware.JSONResponse(w, http.StatusCreated, exam)
}

// UpdateExam handles PUT /exams/{id}
func (h *ExamHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	var req models.UpdateExamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.db.Exec(`
		UPDATE exam SET title = $1, exam_date = $2 WHERE id = $3
	`, req.Title, req.Date, examID)
	if err != nil {
		slog.Error("failed to update exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}

	var exam models.Exam
	err = h.db.QueryRow(`
		SELECT id, title, exam_date, created_at FROM exam WHERE id = $1
	`, examID).Scan(&exam.ID, &exam.Title, &exam.Date, &exam.CreatedAt)
	if err != nil {
		slog.Error("failed to reload exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, exam)
}

// DeleteExam handles DELETE /exams/{id}
// Results and estimates cascade with the exam.
func (h *ExamHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM exam WHERE id = $1`, examID)
	if err != nil {
		slog.Error("failed to delete exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete exam")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete exam")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}

	slog.Info("exam deleted", "exam_id", examID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Exam deleted"})
}

// GetExamStatus handles GET /exams/{id}/status
// Reports whether the exam is upcoming, today or past, with a humanized
// relative date for display.
func (h *ExamHandler) GetExamStatus(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	if examID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exam id is required")
		return
	}

	var dateStr string
	err := h.db.QueryRow(`SELECT exam_date FROM exam WHERE id = $1`, examID).Scan(&dateStr)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		slog.Error("failed to query exam", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	examDate, err := ParseExamDate(dateStr)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	today := truncateToDay(h.now())
	examDay := truncateToDay(examDate)

	status := "today"
	switch {
	case today.Before(examDay):
		status = "upcoming"
	case today.After(examDay):
		status = "past"
	}

	middleware.JSONResponse(w, http.StatusOK, models.ExamStatusResponse{
		ExamID:       examID,
		Date:         dateStr,
		Status:       status,
		RelativeDate: humanize.RelTime(examDay, today, "ago", "from now"),
	})
}
