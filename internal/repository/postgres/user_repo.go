package postgres

import (
	"context"
	"strings"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

const userCols = `
	id, email, role, profile_status, profile_image,
	first_name, last_name, phone_number, date_of_birth, gender, address,
	college_name, department, course, year_of_study, roll_number, prn_number,
	aadhar_number, bank_details, profile_feedback,
	profile_submitted_at, profile_approved_at, profile_rejected_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Role, &u.ProfileStatus, &u.ProfileImage,
		&u.FirstName, &u.LastName, &u.PhoneNumber, &u.DateOfBirth, &u.Gender, &u.Address,
		&u.CollegeName, &u.Department, &u.Course, &u.YearOfStudy, &u.RollNumber, &u.PRNNumber,
		&u.AadharNumber, &u.BankDetails, &u.ProfileFeedback,
		&u.ProfileSubmittedAt, &u.ProfileApprovedAt, &u.ProfileRejectedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create stores a new account (bcrypt hash in password_h).
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, role string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_h, role)
		VALUES ($1,$2,$3)
		RETURNING `+userCols, email, passwordHash, role))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var ph string
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT password_h,`+userCols+`
		FROM users WHERE email=$1`, email).Scan(
		&ph,
		&u.ID, &u.Email, &u.Role, &u.ProfileStatus, &u.ProfileImage,
		&u.FirstName, &u.LastName, &u.PhoneNumber, &u.DateOfBirth, &u.Gender, &u.Address,
		&u.CollegeName, &u.Department, &u.Course, &u.YearOfStudy, &u.RollNumber, &u.PRNNumber,
		&u.AadharNumber, &u.BankDetails, &u.ProfileFeedback,
		&u.ProfileSubmittedAt, &u.ProfileApprovedAt, &u.ProfileRejectedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users WHERE id=$1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepo) ListByRole(ctx context.Context, role, profileStatus string) ([]models.User, error) {
	args := []any{role}
	sql := `SELECT ` + userCols + ` FROM users WHERE role=$1`
	if profileStatus != "" {
		args = append(args, profileStatus)
		sql += ` AND profile_status=$2`
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateProfile applies the non-nil fields of up. The SET list is built from
// the typed struct, so nothing outside it can ever reach storage.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, up models.ProfileUpdate) (*models.User, error) {
	sets := []string{"updated_at=now()"}
	args := []any{}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+"=$"+itoa(len(args)))
	}

	if up.FirstName != nil {
		set("first_name", strings.TrimSpace(*up.FirstName))
	}
	if up.LastName != nil {
		set("last_name", strings.TrimSpace(*up.LastName))
	}
	if up.PhoneNumber != nil {
		set("phone_number", strings.TrimSpace(*up.PhoneNumber))
	}
	if up.DateOfBirth != nil {
		set("date_of_birth", *up.DateOfBirth)
	}
	if up.Gender != nil {
		set("gender", strings.TrimSpace(*up.Gender))
	}
	if up.Address != nil {
		set("address", *up.Address)
	}
	if up.CollegeName != nil {
		set("college_name", strings.TrimSpace(*up.CollegeName))
	}
	if up.Department != nil {
		set("department", strings.TrimSpace(*up.Department))
	}
	if up.Course != nil {
		set("course", strings.TrimSpace(*up.Course))
	}
	if up.YearOfStudy != nil {
		set("year_of_study", *up.YearOfStudy)
	}
	if up.RollNumber != nil {
		set("roll_number", strings.TrimSpace(*up.RollNumber))
	}
	if up.PRNNumber != nil {
		set("prn_number", strings.TrimSpace(*up.PRNNumber))
	}
	if up.AadharNumber != nil {
		set("aadhar_number", strings.TrimSpace(*up.AadharNumber))
	}
	if up.BankDetails != nil {
		set("bank_details", *up.BankDetails)
	}

	args = append(args, id)
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET `+strings.Join(sets, ", ")+`
		WHERE id=$`+itoa(len(args))+`
		RETURNING `+userCols, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepo) SetProfileImage(ctx context.Context, id, path string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET profile_image=$1, updated_at=now()
		WHERE id=$2
		RETURNING `+userCols, path, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepo) SetProfileStatus(ctx context.Context, id, status, feedback string) (*models.User, error) {
	stamp := ""
	switch status {
	case models.ProfilePending:
		stamp = ", profile_submitted_at=now()"
	case models.ProfileApproved:
		stamp = ", profile_approved_at=now()"
	case models.ProfileRejected:
		stamp = ", profile_rejected_at=now()"
	}
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET profile_status=$1, profile_feedback=$2, updated_at=now()`+stamp+`
		WHERE id=$3
		RETURNING `+userCols, status, feedback, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}
