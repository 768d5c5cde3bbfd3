package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntryRepo struct{ db *pgxpool.Pool }

func NewEntryRepo(db *pgxpool.Pool) repository.EntryRepository { return &EntryRepo{db: db} }

const entryCols = `
	e.id, e.student_id, e.work_location, e.in_time, e.out_time,
	e.total_hours, e.amount_earned, e.status,
	e.faculty_name, e.student_name, e.class_name, e.division, e.college_name,
	e.prn_number, e.aadhar_number, e.created_at, e.updated_at`

func scanEntry(row pgx.Row, joined bool) (*models.WorkEntry, error) {
	var e models.WorkEntry
	dest := []any{
		&e.ID, &e.StudentID, &e.WorkLocation, &e.InTime, &e.OutTime,
		&e.TotalHours, &e.AmountEarned, &e.Status,
		&e.FacultyName, &e.StudentName, &e.ClassName, &e.Division, &e.CollegeName,
		&e.PRNNumber, &e.AadharNumber, &e.CreatedAt, &e.UpdatedAt,
	}
	if joined {
		dest = append(dest, &e.StudentEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) Create(ctx context.Context, e *models.WorkEntry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO work_entries (
			student_id, work_location, in_time, out_time, total_hours,
			amount_earned, status, faculty_name, student_name, class_name,
			division, college_name, prn_number, aadhar_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at, updated_at`,
		e.StudentID, e.WorkLocation, e.InTime, e.OutTime, e.TotalHours,
		e.AmountEarned, e.Status, e.FacultyName, e.StudentName, e.ClassName,
		e.Division, e.CollegeName, e.PRNNumber, e.AadharNumber).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EntryRepo) Get(ctx context.Context, id string) (*models.WorkEntry, error) {
	e, err := scanEntry(r.db.QueryRow(ctx, `
		SELECT `+entryCols+`
		FROM work_entries e WHERE e.id=$1`, id), false)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *EntryRepo) ListByStudent(ctx context.Context, studentID string) ([]models.WorkEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryCols+`
		FROM work_entries e
		WHERE e.student_id=$1
		ORDER BY e.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows, false)
}

// ListAll joins the owning student's email for the admin view.
func (r *EntryRepo) ListAll(ctx context.Context) ([]models.WorkEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryCols+`, u.email
		FROM work_entries e
		JOIN users u ON u.id = e.student_id
		ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows, true)
}

func (r *EntryRepo) SetStatus(ctx context.Context, id, status string) (*models.WorkEntry, error) {
	e, err := scanEntry(r.db.QueryRow(ctx, `
		UPDATE work_entries e SET status=$1, updated_at=now()
		FROM users u
		WHERE e.id=$2 AND u.id = e.student_id
		RETURNING `+entryCols+`, u.email`, status, id), true)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *EntryRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM work_entries WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EntryRepo) ListForRange(ctx context.Context, studentID string, from, to time.Time) ([]models.WorkEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryCols+`
		FROM work_entries e
		WHERE e.student_id=$1 AND e.in_time >= $2 AND e.in_time < $3
		ORDER BY e.in_time ASC`, studentID, from, to)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows, false)
}

// Months derives the distinct year/month pairs in UTC, newest first.
func (r *EntryRepo) Months(ctx context.Context, studentID string) ([]models.YearMonth, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT
			EXTRACT(YEAR FROM in_time AT TIME ZONE 'UTC')::int AS y,
			EXTRACT(MONTH FROM in_time AT TIME ZONE 'UTC')::int AS m
		FROM work_entries
		WHERE student_id=$1
		ORDER BY y DESC, m DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.YearMonth
	for rows.Next() {
		var ym models.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return nil, err
		}
		out = append(out, ym)
	}
	return out, rows.Err()
}

func collectEntries(rows pgx.Rows, joined bool) ([]models.WorkEntry, error) {
	defer rows.Close()
	var out []models.WorkEntry
	for rows.Next() {
		e, err := scanEntry(rows, joined)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// small helper to avoid fmt for query building.
func itoa(i int) string { return strconv.Itoa(i) }
