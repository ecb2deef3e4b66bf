// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Gradeboard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register        - Register a person
	POST /auth/login           - Verify credentials, returns a session token
	POST /auth/change-password - Change a person's password

Exams:

	GET    /exams             - List exams
	POST   /exams             - Create exam
	GET    /exams/{id}        - Exam details
	PUT    /exams/{id}        - Update title/date
	DELETE /exams/{id}        - Delete exam (cascades results and estimates)
	GET    /exams/{id}/status - Upcoming/today/past with relative date

Results:

	POST /exams/{id}/results   - Record a grade (one per person per exam)
	GET  /exams/{id}/results   - Grades for an exam
	GET  /persons/{id}/results - Grades for a person

Estimates:

	POST /exams/{id}/estimates - Submit an estimate (window rules apply)
	GET  /exams/{id}/estimates - Estimates for an exam

Leaderboard:

	GET /leaderboard - Ranked points table over all persons

# Handler Initialization

The router creates handler instances with dependency injection:

	accountHandler := handlers.NewAccountHandler(db, cfg)
	examHandler := handlers.NewExamHandler(db, cfg)
	resultHandler := handlers.NewResultHandler(db, cfg)
	estimateHandler := handlers.NewEstimateHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
