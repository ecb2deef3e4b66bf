// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"time"
)

// ErrInvalidExamDate marks an exam whose stored date string is not a
// valid YYYY-MM-DD calendar date. Checked before the decision table.
var ErrInvalidExamDate = errors.New("exam date is not a valid YYYY-MM-DD date")

// Rejection reasons returned to clients
const (
	ReasonFirstBeforeExam  = "first estimate is only allowed before the exam date"
	ReasonSecondAfterExam  = "second estimate is only allowed after the exam date"
	ReasonEstimateCapacity = "two estimates have already been submitted for this exam"
)

// SubmissionDecision is the outcome of a single estimate submission attempt.
// Slot is only meaningful when Allowed: 1 for the before-exam estimate,
// 2 for the after-exam one.
type SubmissionDecision struct {
	Allowed bool
	Slot    int
	Reason  string
}

// ParseExamDate parses a stored exam date string (YYYY-MM-DD).
// Returns ErrInvalidExamDate on any parse failure.
func ParseExamDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidExamDate
	}
	return d, nil
}

// DecideEstimateSubmission applies the estimate window rules:
//
//	priorCount 0: allowed strictly before the exam date
//	priorCount 1: allowed strictly after the exam date
//	priorCount 2+: never allowed
//
// The exam day itself falls in neither window, so a submission on that
// day is always rejected. Comparison is by calendar date only; both
// inputs are truncated to their date components. The function is pure:
// the caller supplies today's date and the stored estimate count, and
// performs any persistence itself.
func DecideEstimateSubmission(examDate, today time.Time, priorCount int) SubmissionDecision {
	examDay := truncateToDay(examDate)
	todayDay := truncateToDay(today)

	switch {
	case priorCount >= 2:
		return SubmissionDecision{Reason: ReasonEstimateCapacity}
	case priorCount == 1:
		if todayDay.After(examDay) {
			return SubmissionDecision{Allowed: true, Slot: 2}
		}
		return SubmissionDecision{Reason: ReasonSecondAfterExam}
	default:
		if todayDay.Before(examDay) {
			return SubmissionDecision{Allowed: true, Slot: 1}
		}
		return SubmissionDecision{Reason: ReasonFirstBeforeExam}
	}
}

// truncateToDay drops the time-of-day component, keeping only the
// calendar date in UTC.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
