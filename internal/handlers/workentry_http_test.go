package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
)

func entryRouter(f *fakeEntries) http.Handler {
	h := NewWorkEntryHTTP(f, testLog)
	r := chi.NewRouter()
	r.Post("/api/work-entries", h.Create())
	r.Get("/api/work-entries/my-entries", h.MyEntries())
	r.Get("/api/work-entries", h.ListAll())
	r.Patch("/api/work-entries/{id}/status", h.SetStatus())
	r.Delete("/api/work-entries/{id}", h.Delete())
	return r
}

func entryBody(in, out string) string {
	return fmt.Sprintf(`{
		"workLocation": "Library",
		"inTime": %q,
		"outTime": %q,
		"facultyName": "Prof. Rao",
		"studentName": "Asha Kulkarni",
		"className": "SYBSc",
		"division": "A",
		"collegeName": "Model College",
		"prnNumber": "PRN-2024-042",
		"aadharNumber": "123412341234"
	}`, in, out)
}

func TestCreateEntryComputesHoursAndEarnings(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	body := entryBody("2025-03-10T09:00:00Z", "2025-03-10T15:30:00Z")
	req := httptest.NewRequest(http.MethodPost, "/api/work-entries", strings.NewReader(body))
	rec := as(r, req, "u1", models.RoleStudent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var e models.WorkEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "u1", e.StudentID)
	assert.Equal(t, models.EntryPending, e.Status)
	assert.Equal(t, 6.5, e.TotalHours)
	assert.Equal(t, 650.0, e.AmountEarned)
}

func TestCreateEntryRejectsInvertedRange(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	for _, out := range []string{"2025-03-10T09:00:00Z" /* equal */, "2025-03-10T08:59:59Z"} {
		body := entryBody("2025-03-10T09:00:00Z", out)
		req := httptest.NewRequest(http.MethodPost, "/api/work-entries", strings.NewReader(body))
		rec := as(r, req, "u1", models.RoleStudent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Empty(t, f.entries, "nothing may be persisted on validation failure")
}

func TestCreateEntryRejectsMissingFields(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	body := `{"workLocation": "Library", "inTime": "2025-03-10T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/work-entries", strings.NewReader(body))
	rec := as(r, req, "u1", models.RoleStudent)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.entries)
}

func TestMyEntriesNewestFirstAndScopedToCaller(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, uid := range []string{"u1", "u2", "u1"} {
		e := &models.WorkEntry{StudentID: uid, InTime: in.AddDate(0, 0, i), OutTime: in.AddDate(0, 0, i).Add(time.Hour)}
		require.NoError(t, f.Create(context.Background(), e))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/work-entries/my-entries", nil)
	rec := as(r, req, "u1", models.RoleStudent)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.WorkEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "e3", got[0].ID)
	assert.Equal(t, "e1", got[1].ID)
}

func TestSetStatusLastWriteWins(t *testing.T) {
	f := newFakeEntries()
	f.emails["u1"] = "a@x.com"
	r := entryRouter(f)

	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := &models.WorkEntry{StudentID: "u1", InTime: in, OutTime: in.Add(time.Hour), Status: models.EntryPending}
	require.NoError(t, f.Create(context.Background(), e))

	patch := func(status string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/work-entries/"+e.ID+"/status",
			strings.NewReader(`{"status":"`+status+`"}`))
		return as(r, req, "admin1", models.RoleAdmin)
	}

	rec := patch(models.EntryApproved)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.WorkEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.EntryApproved, got.Status)
	assert.Equal(t, "a@x.com", got.StudentEmail)

	// A second admin overwrites without conflict.
	rec = patch(models.EntryRejected)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.EntryRejected, got.Status)
}

func TestSetStatusValidation(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	req := httptest.NewRequest(http.MethodPatch, "/api/work-entries/e1/status",
		strings.NewReader(`{"status":"archived"}`))
	rec := as(r, req, "admin1", models.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/work-entries/missing/status",
		strings.NewReader(`{"status":"approved"}`))
	rec = as(r, req, "admin1", models.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRequiresOwnerOrAdmin(t *testing.T) {
	f := newFakeEntries()
	r := entryRouter(f)

	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := &models.WorkEntry{StudentID: "u1", InTime: in, OutTime: in.Add(time.Hour)}
	require.NoError(t, f.Create(context.Background(), e))

	// another student may not delete it
	req := httptest.NewRequest(http.MethodDelete, "/api/work-entries/"+e.ID, nil)
	rec := as(r, req, "u2", models.RoleStudent)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the owner may
	req = httptest.NewRequest(http.MethodDelete, "/api/work-entries/"+e.ID, nil)
	rec = as(r, req, "u1", models.RoleStudent)
	assert.Equal(t, http.StatusOK, rec.Code)

	// and a second delete is a 404
	req = httptest.NewRequest(http.MethodDelete, "/api/work-entries/"+e.ID, nil)
	rec = as(r, req, "admin1", models.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
