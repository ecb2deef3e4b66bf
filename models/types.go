// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Grade bounds (school-grade convention, 1 best, 6 worst)
const (
	GradeBest  = 1
	GradeWorst = 6
)

// Points awarded per grade step below the worst grade
const PointsPerStep = 10

// Request types

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	PersonID    string `json:"person_id" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type CreateExamRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

type UpdateExamRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

type AddResultRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Grade    int    `json:"grade" validate:"required,min=1,max=6"`
}

type SubmitEstimateRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Value    int    `json:"value" validate:"required,min=1,max=6"`
}

// Response types

type RegisterResponse struct {
	Person Person `json:"person"`
}

type LoginResponse struct {
	Person       Person `json:"person"`
	SessionToken string `json:"session_token"`
}

type SubmitEstimateResponse struct {
	Estimate Estimate `json:"estimate"`
	Message  string   `json:"message"`
}

type ExamStatusResponse struct {
	ExamID       string `json:"exam_id"`
	Date         string `json:"date"`
	Status       string `json:"status"` // "upcoming", "today" or "past"
	RelativeDate string `json:"relative_date"`
}

// Domain types

type Person struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Exam struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

type Result struct {
	ID       string `json:"id"`
	ExamID   string `json:"exam_id"`
	PersonID string `json:"person_id"`
	Grade    int    `json:"grade"`
}

type Estimate struct {
	ID          string    `json:"id"`
	ExamID      string    `json:"exam_id"`
	PersonID    string    `json:"person_id"`
	Value       int       `json:"value"`
	Slot        int       `json:"slot"` // 1 = before exam, 2 = after exam
	SubmittedAt time.Time `json:"submitted_at"`
}

type LeaderboardEntry struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"` // 1-indexed, contiguous
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
