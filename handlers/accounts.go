// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gradeboard/auth"
	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/middleware"
	"github.com/danielhkuo/gradeboard/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	person := models.Person{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}

	// The unique index on email turns duplicate registrations into a conflict
	_, err = h.db.Exec(`
		INSERT INTO person (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, person.ID, person.Name, person.Email, hash, person.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "email already registered")
			return
		}
		slog.Error("failed to insert person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("person registered", "person_id", person.ID, "email", person.Email)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{Person: person})
}

// Login handles POST /auth/login
// Bad email and bad password both map to the same 401 message.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var person models.Person
	var hash string
	err := h.db.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM person
		WHERE email = $1
	`, req.Email).Scan(&person.ID, &person.Name, &person.Email, &hash, &person.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		slog.Info("failed login attempt", "email", req.Email)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("login succeeded", "person_id", person.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Person:       person,
		SessionToken: token,
	})
}

// ChangePassword handles POST /auth/change-password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var hash string
	err := h.db.QueryRow(`SELECT password_hash FROM person WHERE id = $1`, req.PersonID).Scan(&hash)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Person not found")
		return
	}
	if err != nil {
		slog.Error("failed to query person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(hash, req.OldPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "old password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	_, err = h.db.Exec(`UPDATE person SET password_hash = $1 WHERE id = $2`, newHash, req.PersonID)
	if err != nil {
		slog.Error("failed to update password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	slog.Info("password changed", "person_id", req.PersonID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Password changed"})
}
