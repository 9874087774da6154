package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// InviteRepository persists user invites.
type InviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(pool *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{pool: pool}
}

// Create persists a new PENDING invite.
func (r *InviteRepository) Create(ctx context.Context, inv *model.Invite) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO invites (name, email, phone_number, role_id, invited_by, token)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at, updated_at`,
		inv.Name, inv.Email, inv.PhoneNumber, inv.RoleID, inv.InvitedBy, inv.Token,
	).Scan(&inv.ID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
}

// FindPendingByToken retrieves the PENDING invite for a token. Accepted or
// unknown tokens return ErrNotFound, so a redeemed invite cannot be reused.
func (r *InviteRepository) FindPendingByToken(ctx context.Context, token string) (*model.Invite, error) {
	inv := &model.Invite{Token: token}
	err := r.pool.QueryRow(ctx,
		`SELECT i.id, i.name, i.email, i.phone_number, i.role_id, ro.name, i.invited_by,
		        i.status, i.created_at, i.updated_at
		 FROM invites i JOIN roles ro ON i.role_id = ro.id
		 WHERE i.token = $1 AND i.status = 'PENDING'`,
		token,
	).Scan(&inv.ID, &inv.Name, &inv.Email, &inv.PhoneNumber, &inv.RoleID, &inv.RoleName,
		&inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

// MarkAccepted flips a PENDING invite to ACCEPTED. Returns ErrNotFound if the
// invite was already redeemed, which makes concurrent redemption race-safe:
// only one UPDATE can observe the PENDING row.
func (r *InviteRepository) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invites SET status = 'ACCEPTED', updated_at = NOW()
		 WHERE id = $1 AND status = 'PENDING'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
