package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// RoleRepository handles role and permission data access.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetGrantsByRoleID retrieves a role's permissions grouped by resource.
func (r *RoleRepository) GetGrantsByRoleID(ctx context.Context, roleID uuid.UUID) ([]model.ResourceGrant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.resource, p.action
		 FROM permissions p
		 JOIN role_permissions rp ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.resource, p.action`, roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Group flat (resource, action) rows into per-resource grants. Rows are
	// ordered by resource so a single pass suffices.
	var grants []model.ResourceGrant
	for rows.Next() {
		var res model.Resource
		var act model.Action
		if err := rows.Scan(&res, &act); err != nil {
			return nil, err
		}
		if n := len(grants); n > 0 && grants[n-1].Resource == res {
			grants[n-1].Actions = append(grants[n-1].Actions, act)
			continue
		}
		grants = append(grants, model.ResourceGrant{Resource: res, Actions: []model.Action{act}})
	}
	return grants, rows.Err()
}

// GetByID retrieves a role and its grants by ID.
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RoleWithPermissions, error) {
	role := &model.Role{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT name, description, created_at FROM roles WHERE id = $1`, id,
	).Scan(&role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	grants, err := r.GetGrantsByRoleID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.RoleWithPermissions{Role: role, Permissions: grants}, nil
}

// GetByName retrieves a role and its grants by its unique name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*model.RoleWithPermissions, error) {
	role := &model.Role{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	grants, err := r.GetGrantsByRoleID(ctx, role.ID)
	if err != nil {
		return nil, err
	}

	return &model.RoleWithPermissions{Role: role, Permissions: grants}, nil
}

// List retrieves all roles with their grants.
func (r *RoleRepository) List(ctx context.Context) ([]model.RoleWithPermissions, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.RoleWithPermissions
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, model.RoleWithPermissions{Role: &role})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Few roles exist, so a permissions query per role keeps the code simple.
	for i := range roles {
		grants, err := r.GetGrantsByRoleID(ctx, roles[i].ID)
		if err != nil {
			return nil, err
		}
		roles[i].Permissions = grants
	}
	return roles, nil
}

// EnsurePermission upserts a (resource, action) permission and returns its ID.
// Used by the seeder; permissions are immutable reference data.
func (r *RoleRepository) EnsurePermission(ctx context.Context, resource model.Resource, action model.Action) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (resource, action) VALUES ($1, $2)
		 ON CONFLICT (resource, action) DO UPDATE SET resource = EXCLUDED.resource
		 RETURNING id`,
		resource, action,
	).Scan(&id)
	return id, err
}

// EnsureRole upserts a role by name and returns its ID.
func (r *RoleRepository) EnsureRole(ctx context.Context, name, description string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id`,
		name, description,
	).Scan(&id)
	return id, err
}

// ReplaceRolePermissions swaps a role's permission set for the given IDs.
func (r *RoleRepository) ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"role_permissions"},
		[]string{"role_id", "permission_id"},
		pgx.CopyFromSlice(len(permissionIDs), func(i int) ([]interface{}, error) {
			return []interface{}{roleID, permissionIDs[i]}, nil
		}),
	)
	return err
}
