package postgres

import (
	"context"
	"time"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepo struct{ db *pgxpool.Pool }

func NewSessionRepo(db *pgxpool.Pool) repository.SessionRepository { return &SessionRepo{db: db} }

func (r *SessionRepo) Add(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES ($1,$2,$3)`, userID, tokenHash, expiresAt)
	return err
}

// Exists ignores rows past their expiry so a stale row can never
// re-validate an expired token.
func (r *SessionRepo) Exists(ctx context.Context, userID, tokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE user_id=$1 AND token_hash=$2 AND expires_at > now()
		)`, userID, tokenHash).Scan(&ok)
	return ok, err
}

func (r *SessionRepo) Delete(ctx context.Context, userID, tokenHash string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM sessions WHERE user_id=$1 AND token_hash=$2`, userID, tokenHash)
	return err
}
