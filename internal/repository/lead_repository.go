package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

const leadColumns = `id, name, email, phone, company_name, status, added_by, created_at, updated_at`

// LeadRepository handles lead persistence.
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func scanLead(row pgx.Row) (*model.Lead, error) {
	l := &model.Lead{}
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.CompanyName,
		&l.Status, &l.AddedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// Create inserts a new lead in NEW status. A lead with an email already on
// file returns ErrDuplicateEmail.
func (r *LeadRepository) Create(ctx context.Context, l *model.Lead) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO leads (name, email, phone, company_name, added_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at, updated_at`,
		l.Name, l.Email, l.Phone, l.CompanyName, l.AddedBy,
	).Scan(&l.ID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves a lead by id.
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

// List returns every lead, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]*model.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// Search filters leads by any combination of name, email and status. Name
// and email match case-insensitively on substrings.
func (r *LeadRepository) Search(ctx context.Context, req *model.SearchLeadsRequest) ([]*model.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR email ILIKE '%' || $2 || '%')
		   AND ($3 = '' OR status = $3)
		 ORDER BY created_at DESC`,
		req.Name, req.Email, string(req.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func collectLeads(rows pgx.Rows) ([]*model.Lead, error) {
	leads := []*model.Lead{}
	for rows.Next() {
		l := &model.Lead{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.CompanyName,
			&l.Status, &l.AddedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// Update applies non-empty fields to a lead.
func (r *LeadRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads
		 SET name = COALESCE(NULLIF($2, ''), name),
		     email = COALESCE(NULLIF($3, ''), email),
		     phone = COALESCE(NULLIF($4, ''), phone),
		     company_name = COALESCE(NULLIF($5, ''), company_name),
		     status = COALESCE(NULLIF($6, ''), status),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, req.Name, req.Email, req.Phone, req.CompanyName, string(req.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus moves a lead to a new pipeline status.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lead and its interactions.
func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
