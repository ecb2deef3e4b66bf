// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with go-playground/validator tags:

  - RegisterRequest: name, email, password
  - LoginRequest: email, password
  - ChangePasswordRequest: person_id, old_password, new_password
  - CreateExamRequest / UpdateExamRequest: title, date (YYYY-MM-DD)
  - AddResultRequest: person_id, grade (1-6)
  - SubmitEstimateRequest: person_id, value (1-6)

Validate runs the shared validator instance over a request:

	if err := models.Validate(req); err != nil { ... }

# Response Types

Types for JSON responses:

  - RegisterResponse: person
  - LoginResponse: person, session_token
  - SubmitEstimateResponse: estimate, message
  - ExamStatusResponse: exam_id, date, status, relative_date
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Person: registered participant (password hash never serialized)
  - Exam: exam metadata with a date-only string
  - Result: one grade per exam/person pair
  - Estimate: self-predicted grade with its window slot
  - LeaderboardEntry: person_id, name, points, rank

# Constants

Grade bounds and scoring:

	GradeBest     = 1
	GradeWorst    = 6
	PointsPerStep = 10

A grade g is worth max(0, (GradeWorst - g) * PointsPerStep) points.
*/
package models
