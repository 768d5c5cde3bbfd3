package repository

import (
	"context"
	"time"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, role string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListByRole filters by role, and additionally by profileStatus when
	// non-empty.
	ListByRole(ctx context.Context, role, profileStatus string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, up models.ProfileUpdate) (*models.User, error)
	SetProfileImage(ctx context.Context, id, path string) (*models.User, error)
	// SetProfileStatus moves the profile workflow and stamps the timestamp
	// matching the new status. Feedback replaces any previous feedback.
	SetProfileStatus(ctx context.Context, id, status, feedback string) (*models.User, error)
}

// SessionRepository is the per-user active-token list. Tokens are stored
// hashed; revoking one session never touches the others.
type SessionRepository interface {
	Add(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	Exists(ctx context.Context, userID, tokenHash string) (bool, error)
	Delete(ctx context.Context, userID, tokenHash string) error
}

type EntryRepository interface {
	Create(ctx context.Context, e *models.WorkEntry) error
	Get(ctx context.Context, id string) (*models.WorkEntry, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.WorkEntry, error)
	ListAll(ctx context.Context) ([]models.WorkEntry, error)
	SetStatus(ctx context.Context, id, status string) (*models.WorkEntry, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ListForRange returns the student's entries whose inTime falls in
	// [from, to), ascending by inTime.
	ListForRange(ctx context.Context, studentID string, from, to time.Time) ([]models.WorkEntry, error)
	// Months returns the distinct calendar months with entries, newest first.
	Months(ctx context.Context, studentID string) ([]models.YearMonth, error)
}
