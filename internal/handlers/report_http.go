package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

type ReportsHTTP struct {
	entries repository.EntryRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

func NewReportsHTTP(entries repository.EntryRepository, users repository.UserRepository, log zerolog.Logger) *ReportsHTTP {
	return &ReportsHTTP{entries: entries, users: users, log: log}
}

// monthRange returns the UTC half-open interval [first of month, first of
// next month). All calendar math runs in UTC so a boundary entry lands in
// exactly one month.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// GET /api/reports/monthly/{studentId}/{year}/{month}: self or admin.
func (h *ReportsHTTP) Monthly() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okY := utils.PathInt(r, "year")
		month, okM := utils.PathInt(r, "month")
		if !okY || !okM || month < 1 || month > 12 {
			utils.Error(w, http.StatusBadRequest, "invalid year or month")
			return
		}

		studentID := chi.URLParam(r, "studentId")
		student, err := h.users.GetByID(r.Context(), studentID)
		if err != nil {
			h.log.Error().Err(err).Msg("student fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to generate report")
			return
		}
		if student == nil {
			utils.Error(w, http.StatusNotFound, "student not found")
			return
		}

		from, to := monthRange(year, month)
		entries, err := h.entries.ListForRange(r.Context(), studentID, from, to)
		if err != nil {
			h.log.Error().Err(err).Msg("report query failed")
			utils.Error(w, http.StatusInternalServerError, "failed to generate report")
			return
		}
		if entries == nil {
			entries = []models.WorkEntry{}
		}

		var rep models.MonthlyReport
		rep.Student.ID = student.ID
		rep.Student.Email = student.Email
		rep.Year = year
		rep.Month = month
		rep.Entries = entries
		rep.Summary = summarize(entries)
		utils.JSON(w, http.StatusOK, rep)
	}
}

// GET /api/reports/available-months/{studentId}: self or admin.
func (h *ReportsHTTP) AvailableMonths() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := h.entries.Months(r.Context(), chi.URLParam(r, "studentId"))
		if err != nil {
			h.log.Error().Err(err).Msg("month query failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch available months")
			return
		}
		if months == nil {
			months = []models.YearMonth{}
		}
		utils.JSON(w, http.StatusOK, months)
	}
}

func summarize(entries []models.WorkEntry) models.ReportSummary {
	var s models.ReportSummary
	s.TotalDays = len(entries)
	for _, e := range entries {
		s.TotalHours += e.TotalHours
		s.TotalEarnings += e.AmountEarned
	}
	return s
}
