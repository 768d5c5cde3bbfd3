package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/middleware"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
)

var testLog = zerolog.Nop()

// as sends req through h with an authenticated identity on the context, the
// way WithAuth would have set it.
func as(h http.Handler, req *http.Request, uid, role string) *httptest.ResponseRecorder {
	ctx := context.WithValue(req.Context(), middleware.CtxUserID, uid)
	ctx = context.WithValue(ctx, middleware.CtxRole, role)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

// ---------------------------------------------------------------------------
// fake EntryRepository
// ---------------------------------------------------------------------------

type fakeEntries struct {
	seq     int
	order   []string // creation order
	entries map[string]*models.WorkEntry
	emails  map[string]string // student id -> email
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{entries: map[string]*models.WorkEntry{}, emails: map[string]string{}}
}

func (f *fakeEntries) Create(_ context.Context, e *models.WorkEntry) error {
	f.seq++
	e.ID = "e" + strconv.Itoa(f.seq)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.entries[e.ID] = &cp
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEntries) Get(_ context.Context, id string) (*models.WorkEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntries) ListByStudent(_ context.Context, studentID string) ([]models.WorkEntry, error) {
	var out []models.WorkEntry
	for i := len(f.order) - 1; i >= 0; i-- {
		if e := f.entries[f.order[i]]; e != nil && e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntries) ListAll(_ context.Context) ([]models.WorkEntry, error) {
	var out []models.WorkEntry
	for i := len(f.order) - 1; i >= 0; i-- {
		if e := f.entries[f.order[i]]; e != nil {
			cp := *e
			cp.StudentEmail = f.emails[e.StudentID]
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeEntries) SetStatus(_ context.Context, id, status string) (*models.WorkEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	cp := *e
	cp.StudentEmail = f.emails[e.StudentID]
	return &cp, nil
}

func (f *fakeEntries) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.entries[id]; !ok {
		return false, nil
	}
	delete(f.entries, id)
	return true, nil
}

func (f *fakeEntries) ListForRange(_ context.Context, studentID string, from, to time.Time) ([]models.WorkEntry, error) {
	var out []models.WorkEntry
	for _, id := range f.order {
		e := f.entries[id]
		if e == nil || e.StudentID != studentID {
			continue
		}
		if !e.InTime.Before(from) && e.InTime.Before(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntries) Months(_ context.Context, studentID string) ([]models.YearMonth, error) {
	seen := map[models.YearMonth]bool{}
	var out []models.YearMonth
	for _, id := range f.order {
		e := f.entries[id]
		if e == nil || e.StudentID != studentID {
			continue
		}
		utc := e.InTime.UTC()
		ym := models.YearMonth{Year: utc.Year(), Month: int(utc.Month())}
		if !seen[ym] {
			seen[ym] = true
			out = append(out, ym)
		}
	}
	// newest first, as the SQL orders it
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.Year > a.Year || (b.Year == a.Year && b.Month > a.Month) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// fake SessionRepository
// ---------------------------------------------------------------------------

type fakeSessions struct {
	live map[string]map[string]time.Time
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{live: map[string]map[string]time.Time{}}
}

func (f *fakeSessions) Add(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if f.live[userID] == nil {
		f.live[userID] = map[string]time.Time{}
	}
	f.live[userID][tokenHash] = expiresAt
	return nil
}

func (f *fakeSessions) Exists(_ context.Context, userID, tokenHash string) (bool, error) {
	exp, ok := f.live[userID][tokenHash]
	return ok && exp.After(time.Now()), nil
}

func (f *fakeSessions) Delete(_ context.Context, userID, tokenHash string) error {
	delete(f.live[userID], tokenHash)
	return nil
}

// ---------------------------------------------------------------------------
// fake UserRepository
// ---------------------------------------------------------------------------

type fakeUsers struct {
	seq    int
	byID   map[string]*models.User
	hashes map[string]string // user id -> password hash
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}, hashes: map[string]string{}}
}

func (f *fakeUsers) add(email, role string) *models.User {
	f.seq++
	u := &models.User{
		ID:            "u" + strconv.Itoa(f.seq),
		Email:         email,
		Role:          role,
		ProfileStatus: models.ProfileIncomplete,
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) Create(_ context.Context, email, passwordHash, role string) (*models.User, error) {
	u := f.add(email, role)
	f.hashes[u.ID] = passwordHash
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, f.hashes[u.ID], nil
		}
	}
	return nil, "", nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) ListByRole(_ context.Context, role, profileStatus string) ([]models.User, error) {
	var out []models.User
	for i := 1; i <= f.seq; i++ {
		u := f.byID["u"+strconv.Itoa(i)]
		if u == nil || u.Role != role {
			continue
		}
		if profileStatus != "" && u.ProfileStatus != profileStatus {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, up models.ProfileUpdate) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if up.FirstName != nil {
		u.FirstName = *up.FirstName
	}
	if up.LastName != nil {
		u.LastName = *up.LastName
	}
	if up.PhoneNumber != nil {
		u.PhoneNumber = *up.PhoneNumber
	}
	if up.DateOfBirth != nil {
		dob := *up.DateOfBirth
		u.DateOfBirth = &dob
	}
	if up.Gender != nil {
		u.Gender = *up.Gender
	}
	if up.Address != nil {
		u.Address = *up.Address
	}
	if up.CollegeName != nil {
		u.CollegeName = *up.CollegeName
	}
	if up.Department != nil {
		u.Department = *up.Department
	}
	if up.Course != nil {
		u.Course = *up.Course
	}
	if up.YearOfStudy != nil {
		u.YearOfStudy = *up.YearOfStudy
	}
	if up.RollNumber != nil {
		u.RollNumber = *up.RollNumber
	}
	if up.PRNNumber != nil {
		u.PRNNumber = *up.PRNNumber
	}
	if up.AadharNumber != nil {
		u.AadharNumber = *up.AadharNumber
	}
	if up.BankDetails != nil {
		u.BankDetails = *up.BankDetails
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SetProfileImage(_ context.Context, id, path string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	u.ProfileImage = path
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SetProfileStatus(_ context.Context, id, status, feedback string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	u.ProfileStatus = status
	u.ProfileFeedback = feedback
	switch status {
	case models.ProfilePending:
		u.ProfileSubmittedAt = &now
	case models.ProfileApproved:
		u.ProfileApprovedAt = &now
	case models.ProfileRejected:
		u.ProfileRejectedAt = &now
	}
	cp := *u
	return &cp, nil
}
