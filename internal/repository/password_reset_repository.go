package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// PasswordResetRepository persists password reset tokens.
type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository creates a new PasswordResetRepository.
func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

// Create persists a new reset token.
func (r *PasswordResetRepository) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO password_reset_tokens (token, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		t.Token, t.UserID, t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
}

// FindActiveByToken retrieves a non-expired reset token. Consumed or unknown
// tokens return ErrNotFound.
func (r *PasswordResetRepository) FindActiveByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	t := &model.PasswordResetToken{Token: token}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, expires_at, created_at
		 FROM password_reset_tokens
		 WHERE token = $1 AND expires_at >= NOW()`,
		token,
	).Scan(&t.ID, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Invalidate expires a reset token immediately so it cannot be redeemed again.
func (r *PasswordResetRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE password_reset_tokens SET expires_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
