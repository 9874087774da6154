package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// RefreshTokenRepository persists refresh tokens. Invalidation is modeled as
// setting expires_at to now, so "active" always means expires_at >= NOW().
type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository.
func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

// Create persists a freshly issued refresh token.
func (r *RefreshTokenRepository) Create(ctx context.Context, t *model.RefreshToken) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO refresh_tokens (token, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		t.Token, t.UserID, t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
}

// FindActive retrieves the non-expired token row matching (token, user).
// Expired or unknown tokens both return ErrNotFound.
func (r *RefreshTokenRepository) FindActive(ctx context.Context, token string, userID uuid.UUID) (*model.RefreshToken, error) {
	t := &model.RefreshToken{Token: token}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, expires_at, created_at
		 FROM refresh_tokens
		 WHERE token = $1 AND user_id = $2 AND expires_at >= NOW()`,
		token, userID,
	).Scan(&t.ID, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Invalidate expires a token row immediately.
func (r *RefreshTokenRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET expires_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvalidateByValue expires the token matching (token, user). Used by logout.
func (r *RefreshTokenRepository) InvalidateByValue(ctx context.Context, token string, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET expires_at = NOW() WHERE token = $1 AND user_id = $2`,
		token, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
