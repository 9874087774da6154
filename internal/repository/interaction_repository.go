package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

const interactionSelect = `
	SELECT i.id, i.lead_id, i.customer_id, i.interaction_type, i.date, i.notes,
	       i.created_by, COALESCE(l.name, ''), COALESCE(c.name, ''), u.name,
	       i.created_at, i.updated_at
	FROM interactions i
	LEFT JOIN leads l ON l.id = i.lead_id
	LEFT JOIN customers c ON c.id = i.customer_id
	JOIN users u ON u.id = i.created_by`

// InteractionRepository handles interaction persistence.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(pool *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{pool: pool}
}

// Create logs a new interaction.
func (r *InteractionRepository) Create(ctx context.Context, i *model.Interaction) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO interactions (lead_id, customer_id, interaction_type, date, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		i.LeadID, i.CustomerID, i.InteractionType, i.Date, i.Notes, i.CreatedBy,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

// GetByID retrieves an interaction with resolved lead, customer and creator
// names.
func (r *InteractionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Interaction, error) {
	row := r.pool.QueryRow(ctx, interactionSelect+` WHERE i.id = $1`, id)
	i, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

// List returns every interaction, most recent contact first.
func (r *InteractionRepository) List(ctx context.Context) ([]*model.Interaction, error) {
	rows, err := r.pool.Query(ctx, interactionSelect+` ORDER BY i.date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// ListByLead returns a lead's interactions, most recent contact first.
func (r *InteractionRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*model.Interaction, error) {
	rows, err := r.pool.Query(ctx, interactionSelect+` WHERE i.lead_id = $1 ORDER BY i.date DESC`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// ListByCustomer returns a customer's interactions, most recent contact first.
func (r *InteractionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Interaction, error) {
	rows, err := r.pool.Query(ctx, interactionSelect+` WHERE i.customer_id = $1 ORDER BY i.date DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInteractions(rows)
}

func scanInteraction(row pgx.Row) (*model.Interaction, error) {
	i := &model.Interaction{}
	err := row.Scan(&i.ID, &i.LeadID, &i.CustomerID, &i.InteractionType, &i.Date, &i.Notes,
		&i.CreatedBy, &i.LeadName, &i.CustomerName, &i.CreatorName, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func collectInteractions(rows pgx.Rows) ([]*model.Interaction, error) {
	interactions := []*model.Interaction{}
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// Update applies non-zero fields to an interaction.
func (r *InteractionRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateInteractionRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interactions
		 SET interaction_type = COALESCE(NULLIF($2, ''), interaction_type),
		     date = COALESCE($3, date),
		     notes = COALESCE(NULLIF($4, ''), notes),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, string(req.InteractionType), req.Date, req.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an interaction.
func (r *InteractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
