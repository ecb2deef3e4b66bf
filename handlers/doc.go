// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Gradeboard API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login, password changes
  - ExamHandler: Exam CRUD and date status
  - ResultHandler: Recording and listing grades
  - EstimateHandler: Estimate submission and listing
  - LeaderboardHandler: Points ranking

Handlers are created via constructor functions that accept *sql.DB and Config:

	examHandler := handlers.NewExamHandler(db, cfg)

Handlers that compare against "today" (exams, estimates) hold a
now func() time.Time field, defaulting to time.Now; tests override it
to pin dates.

# Estimate Rules

The submission decision is a pure function in estimaterules.go:

	decision := DecideEstimateSubmission(examDate, today, priorCount)

A pair may hold at most two estimates: the first strictly before the
exam date, the second strictly after it. The exam day itself is in
neither window. The handler runs the count and insert in a transaction,
and the UNIQUE (exam_id, person_id, slot) key rejects concurrent racers.

# Leaderboard

The scoring engine is a pure function in leaderboard.go:

	entries := ComputeLeaderboard(persons, resultsByPerson)

Each grade g contributes max(0, (6-g)*10) points. Entries are sorted
points-descending with ties broken by person id ascending, and ranks
are the contiguous ordinal positions 1..N.

# Error Mapping

	400 - invalid JSON, failed validation, unparseable exam date,
	      rejected estimate submission (with the reason text)
	401 - bad credentials
	404 - unknown exam or person
	409 - duplicate email, duplicate result pair, estimate slot race
	500 - unexpected database errors

Handlers never write on a rejected submission.
*/
package handlers
