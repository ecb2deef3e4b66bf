// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gradeboard/cliparse"
	"github.com/danielhkuo/gradeboard/handlers"
	"github.com/danielhkuo/gradeboard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	examHandler := handlers.NewExamHandler(db, cfg)
	resultHandler := handlers.NewResultHandler(db, cfg)
	estimateHandler := handlers.NewEstimateHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /auth/change-password", middleware.WithLogging(accountHandler.ChangePassword))

	// Exams
	mux.HandleFunc("GET /exams", middleware.WithLogging(examHandler.GetAllExams))
	mux.HandleFunc("POST /exams", middleware.WithLogging(examHandler.CreateExam))
	mux.HandleFunc("GET /exams/{id}", middleware.WithLogging(examHandler.GetExam))
	mux.HandleFunc("PUT /exams/{id}", middleware.WithLogging(examHandler.UpdateExam))
	mux.HandleFunc("DELETE /exams/{id}", middleware.WithLogging(examHandler.DeleteExam))
	mux.HandleFunc("GET /exams/{id}/status", middleware.WithLogging(examHandler.GetExamStatus))

	// Results
	mux.HandleFunc("POST /exams/{id}/results", middleware.WithLogging(resultHandler.AddResult))
	mux.HandleFunc("GET /exams/{id}/results", middleware.WithLogging(resultHandler.GetResultsByExam))
	mux.HandleFunc("GET /persons/{id}/results", middleware.WithLogging(resultHandler.GetResultsByPerson))

	// Estimates
	mux.HandleFunc("POST /exams/{id}/estimates", middleware.WithLogging(estimateHandler.SubmitEstimate))
	mux.HandleFunc("GET /exams/{id}/estimates", middleware.WithLogging(estimateHandler.GetEstimatesByExam))

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gradeboard API v1"))
	})

	return mux
}
