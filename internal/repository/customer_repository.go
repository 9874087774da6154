package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

const customerColumns = `id, name, email, phone, company_name, status, created_at, updated_at`

// CustomerRepository handles customer persistence.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer in ACTIVE status.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, company_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.CompanyName,
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a customer by id.
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c := &model.Customer{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CompanyName, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every customer, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// Search filters customers by any combination of name, email and status.
func (r *CustomerRepository) Search(ctx context.Context, req *model.SearchCustomersRequest) ([]*model.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR email ILIKE '%' || $2 || '%')
		   AND ($3 = '' OR status = $3)
		 ORDER BY created_at DESC`,
		req.Name, req.Email, string(req.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func collectCustomers(rows pgx.Rows) ([]*model.Customer, error) {
	customers := []*model.Customer{}
	for rows.Next() {
		c := &model.Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CompanyName,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update applies non-empty fields to a customer.
func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customers
		 SET name = COALESCE(NULLIF($2, ''), name),
		     email = COALESCE(NULLIF($3, ''), email),
		     phone = COALESCE(NULLIF($4, ''), phone),
		     company_name = COALESCE(NULLIF($5, ''), company_name),
		     status = COALESCE(NULLIF($6, ''), status),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, req.Name, req.Email, req.Phone, req.CompanyName, string(req.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a customer and its interactions.
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
