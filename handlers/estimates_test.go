// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/danielhkuo/gradeboard/models"
	"github.com/danielhkuo/gradeboard/testutil"
)

// fixedClock pins a handler's clock to the given date string
func fixedClock(t *testing.T, day string) func() time.Time {
	t.Helper()
	d := mustDate(t, day)
	return func() time.Time { return d }
}

func submitEstimate(h *EstimateHandler, examID string, req models.SubmitEstimateRequest) *httptest.ResponseRecorder {
	r := testutil.MakeRequest("POST", "/exams/"+examID+"/estimates", req, nil)
	r.SetPathValue("id", examID)
	w := httptest.NewRecorder()
	h.SubmitEstimate(w, r)
	return w
}

func TestSubmitEstimate_Windows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	personID := testutil.CreateTestPerson(t, db, "Matti Koenis", "matti@example.com")
	examID := testutil.CreateTestExam(t, db, "Math Exam Equations", "2025-11-15")

	handler := NewEstimateHandler(db, cfg)

	// Before the exam, the first estimate goes through
	handler.now = fixedClock(t, "2025-11-10")
	w := submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 3})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitEstimateResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Estimate.Slot != 1 {
		t.Errorf("expected slot 1, got %d", resp.Estimate.Slot)
	}

	// Still before the exam, a second attempt is rejected
	w = submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 2})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// On the exam day itself, still rejected
	handler.now = fixedClock(t, "2025-11-15")
	w = submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 2})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// After the exam, the second estimate goes through
	handler.now = fixedClock(t, "2025-11-20")
	w = submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 2})
	testutil.AssertStatus(t, w, http.StatusCreated)

	testutil.AssertJSON(t, w, &resp)
	if resp.Estimate.Slot != 2 {
		t.Errorf("expected slot 2, got %d", resp.Estimate.Slot)
	}

	// A third estimate never goes through
	w = submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 1})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Exactly two rows stored
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM estimate WHERE exam_id = $1 AND person_id = $2`, examID, personID).Scan(&count); err != nil {
		t.Fatalf("Failed to count estimates: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 stored estimates, got %d", count)
	}
}

func TestSubmitEstimate_FirstAfterExamRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	personID := testutil.CreateTestPerson(t, db, "Max Mueller", "max@example.com")
	examID := testutil.CreateTestExam(t, db, "Math Exam Variables", "2025-09-05")

	handler := NewEstimateHandler(db, cfg)
	handler.now = fixedClock(t, "2025-09-10")

	w := submitEstimate(handler, examID, models.SubmitEstimateRequest{PersonID: personID, Value: 4})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Message != ReasonFirstBeforeExam {
		t.Errorf("expected reason %q, got %q", ReasonFirstBeforeExam, errResp.Message)
	}

	// Nothing written on rejection
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM estimate`).Scan(&count); err != nil {
		t.Fatalf("Failed to count estimates: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected submission must not write, found %d rows", count)
	}
}

func TestSubmitEstimate_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	personID := testutil.CreateTestPerson(t, db, "Hans Gross", "hans@example.com")
	examID := testutil.CreateTestExam(t, db, "Math Exam Equations", "2025-11-15")
	badDateExam := testutil.CreateTestExam(t, db, "Broken Exam", "15.11.2025")

	handler := NewEstimateHandler(db, cfg)
	handler.now = fixedClock(t, "2025-11-10")

	tests := []struct {
		name           string
		examID         string
		req            models.SubmitEstimateRequest
		expectedStatus int
	}{
		{
			name:           "unknown exam",
			examID:         "does-not-exist",
			req:            models.SubmitEstimateRequest{PersonID: personID, Value: 3},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown person",
			examID:         examID,
			req:            models.SubmitEstimateRequest{PersonID: "does-not-exist", Value: 3},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unparseable stored exam date",
			examID:         badDateExam,
			req:            models.SubmitEstimateRequest{PersonID: personID, Value: 3},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "value below range",
			examID:         examID,
			req:            models.SubmitEstimateRequest{PersonID: personID, Value: 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "value above range",
			examID:         examID,
			req:            models.SubmitEstimateRequest{PersonID: personID, Value: 7},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing person id",
			examID:         examID,
			req:            models.SubmitEstimateRequest{Value: 3},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitEstimate(handler, tt.examID, tt.req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// None of the failed attempts wrote anything
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM estimate`).Scan(&count); err != nil {
		t.Fatalf("Failed to count estimates: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no stored estimates, got %d", count)
	}
}

func TestGetEstimatesByExam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewEstimateHandler(db, cfg)

	personA := testutil.CreateTestPerson(t, db, "Matti Koenis", "matti@example.com")
	personB := testutil.CreateTestPerson(t, db, "Max Mueller", "max@example.com")
	examID := testutil.CreateTestExam(t, db, "Math Exam Equations", "2025-11-15")

	testutil.AddTestEstimate(t, db, examID, personA, 3, 1)
	testutil.AddTestEstimate(t, db, examID, personA, 2, 2)
	testutil.AddTestEstimate(t, db, examID, personB, 4, 1)

	req := httptest.NewRequest("GET", "/exams/"+examID+"/estimates", nil)
	req.SetPathValue("id", examID)
	w := httptest.NewRecorder()
	handler.GetEstimatesByExam(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var estimates []models.Estimate
	testutil.AssertJSON(t, w, &estimates)
	if len(estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(estimates))
	}

	// Unknown exam is a 404
	req = httptest.NewRequest("GET", "/exams/nope/estimates", nil)
	req.SetPathValue("id", "nope")
	w = httptest.NewRecorder()
	handler.GetEstimatesByExam(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
