package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/middleware"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

// WorkEntryHTTP wires the work-session ledger endpoints to the repository.
type WorkEntryHTTP struct {
	entries repository.EntryRepository
	log     zerolog.Logger
}

func NewWorkEntryHTTP(entries repository.EntryRepository, log zerolog.Logger) *WorkEntryHTTP {
	return &WorkEntryHTTP{entries: entries, log: log}
}

// POST /api/work-entries
func (h *WorkEntryHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		WorkLocation string    `json:"workLocation"`
		InTime       time.Time `json:"inTime"`
		OutTime      time.Time `json:"outTime"`
		FacultyName  string    `json:"facultyName"`
		StudentName  string    `json:"studentName"`
		ClassName    string    `json:"className"`
		Division     string    `json:"division"`
		CollegeName  string    `json:"collegeName"`
		PRNNumber    string    `json:"prnNumber"`
		AadharNumber string    `json:"aadharNumber"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		in.WorkLocation = strings.TrimSpace(in.WorkLocation)
		if in.WorkLocation == "" || in.InTime.IsZero() || in.OutTime.IsZero() ||
			in.FacultyName == "" || in.StudentName == "" || in.ClassName == "" ||
			in.Division == "" || in.CollegeName == "" || in.PRNNumber == "" || in.AadharNumber == "" {
			utils.Error(w, http.StatusBadRequest, "required fields missing")
			return
		}
		if !in.OutTime.After(in.InTime) {
			utils.Error(w, http.StatusBadRequest, "out time must be after in time")
			return
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		hours := models.HoursBetween(in.InTime, in.OutTime)
		e := &models.WorkEntry{
			StudentID:    uid,
			WorkLocation: in.WorkLocation,
			InTime:       in.InTime,
			OutTime:      in.OutTime,
			TotalHours:   hours,
			AmountEarned: hours * models.HourlyRate,
			Status:       models.EntryPending,
			FacultyName:  strings.TrimSpace(in.FacultyName),
			StudentName:  strings.TrimSpace(in.StudentName),
			ClassName:    strings.TrimSpace(in.ClassName),
			Division:     strings.TrimSpace(in.Division),
			CollegeName:  strings.TrimSpace(in.CollegeName),
			PRNNumber:    strings.TrimSpace(in.PRNNumber),
			AadharNumber: strings.TrimSpace(in.AadharNumber),
		}
		if err := h.entries.Create(r.Context(), e); err != nil {
			h.log.Error().Err(err).Msg("entry create failed")
			utils.Error(w, http.StatusInternalServerError, "failed to create work entry")
			return
		}
		utils.JSON(w, http.StatusCreated, e)
	}
}

// GET /api/work-entries/my-entries
func (h *WorkEntryHTTP) MyEntries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		entries, err := h.entries.ListByStudent(r.Context(), uid)
		if err != nil {
			h.log.Error().Err(err).Msg("entry list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch work entries")
			return
		}
		if entries == nil {
			entries = []models.WorkEntry{}
		}
		utils.JSON(w, http.StatusOK, entries)
	}
}

// GET /api/work-entries: admin, student email joined.
func (h *WorkEntryHTTP) ListAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.entries.ListAll(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("entry list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch work entries")
			return
		}
		if entries == nil {
			entries = []models.WorkEntry{}
		}
		utils.JSON(w, http.StatusOK, entries)
	}
}

// PATCH /api/work-entries/{id}/status: admin; last write wins.
func (h *WorkEntryHTTP) SetStatus() http.HandlerFunc {
	type inDTO struct {
		Status string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		switch in.Status {
		case models.EntryPending, models.EntryApproved, models.EntryRejected:
		default:
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}

		e, err := h.entries.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
		if err != nil {
			h.log.Error().Err(err).Msg("entry status update failed")
			utils.Error(w, http.StatusInternalServerError, "failed to update work entry status")
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "work entry not found")
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

// DELETE /api/work-entries/{id}: owner or admin.
func (h *WorkEntryHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, err := h.entries.Get(r.Context(), id)
		if err != nil {
			h.log.Error().Err(err).Msg("entry fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to delete work entry")
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "work entry not found")
			return
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		if role != models.RoleAdmin && e.StudentID != uid {
			utils.Error(w, http.StatusForbidden, "access denied")
			return
		}

		ok, err := h.entries.Delete(r.Context(), id)
		if err != nil {
			h.log.Error().Err(err).Msg("entry delete failed")
			utils.Error(w, http.StatusInternalServerError, "failed to delete work entry")
			return
		}
		if !ok {
			utils.Error(w, http.StatusNotFound, "work entry not found")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"message": "work entry deleted"})
	}
}
