package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// ConversionRepository handles the immutable lead conversion log.
type ConversionRepository struct {
	pool *pgxpool.Pool
}

// NewConversionRepository creates a new ConversionRepository.
func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}

// Create records a conversion.
func (r *ConversionRepository) Create(ctx context.Context, h *model.ConversionHistory) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO conversion_histories
		     (lead_id, customer_id, conversion_date, notes, converted_by, conversion_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		h.LeadID, h.CustomerID, h.ConversionDate, h.Notes, h.ConvertedBy, h.ConversionType,
	).Scan(&h.ID, &h.CreatedAt)
}

// GetByID returns a single conversion record.
func (r *ConversionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ConversionHistory, error) {
	h := &model.ConversionHistory{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, lead_id, customer_id, conversion_date, notes, converted_by, conversion_type, created_at
		 FROM conversion_histories
		 WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.LeadID, &h.CustomerID, &h.ConversionDate,
		&h.Notes, &h.ConvertedBy, &h.ConversionType, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

// List returns every conversion record, most recent first.
func (r *ConversionRepository) List(ctx context.Context) ([]*model.ConversionHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, lead_id, customer_id, conversion_date, notes, converted_by, conversion_type, created_at
		 FROM conversion_histories
		 ORDER BY conversion_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectConversions(rows)
}

// ListByLead returns a lead's conversion records, most recent first.
func (r *ConversionRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*model.ConversionHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, lead_id, customer_id, conversion_date, notes, converted_by, conversion_type, created_at
		 FROM conversion_histories
		 WHERE lead_id = $1
		 ORDER BY conversion_date DESC`,
		leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectConversions(rows)
}

// CountByLead reports how many times a lead has been converted.
func (r *ConversionRepository) CountByLead(ctx context.Context, leadID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversion_histories WHERE lead_id = $1`, leadID,
	).Scan(&count)
	return count, err
}

func collectConversions(rows pgx.Rows) ([]*model.ConversionHistory, error) {
	histories := []*model.ConversionHistory{}
	for rows.Next() {
		h := &model.ConversionHistory{}
		if err := rows.Scan(&h.ID, &h.LeadID, &h.CustomerID, &h.ConversionDate,
			&h.Notes, &h.ConvertedBy, &h.ConversionType, &h.CreatedAt); err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
