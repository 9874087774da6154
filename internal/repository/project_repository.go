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

// ProjectRepository handles project and assignment persistence.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a project with its creator's name.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p := &model.Project{}
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.name, p.description, p.created_by, u.name, p.created_at, p.updated_at
		 FROM projects p
		 JOIN users u ON u.id = p.created_by
		 WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatorName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListAll returns every project, newest first.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.description, p.created_by, u.name, p.created_at, p.updated_at
		 FROM projects p
		 JOIN users u ON u.id = p.created_by
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListAssignedTo returns the projects a user is assigned to, newest first.
func (r *ProjectRepository) ListAssignedTo(ctx context.Context, userID uuid.UUID) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.description, p.created_by, u.name, p.created_at, p.updated_at
		 FROM projects p
		 JOIN users u ON u.id = p.created_by
		 JOIN assignments a ON a.project_id = p.id
		 WHERE a.user_id = $1
		 ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProjects(rows pgx.Rows) ([]*model.Project, error) {
	projects := []*model.Project{}
	for rows.Next() {
		p := &model.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatorName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update applies non-empty fields to a project.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProjectRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		 SET name = COALESCE(NULLIF($2, ''), name),
		     description = COALESCE(NULLIF($3, ''), description),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, req.Name, req.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project. Assignments cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAssignment links a user to a project. A second assignment of the
// same user to the same project returns ErrDuplicateAssignment.
func (r *ProjectRepository) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assignments (user_id, project_id)
		 VALUES ($1, $2)
		 RETURNING id, assigned_at`,
		a.UserID, a.ProjectID,
	).Scan(&a.ID, &a.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

// GetAssignment looks up the assignment for a (user, project) pair.
func (r *ProjectRepository) GetAssignment(ctx context.Context, userID, projectID uuid.UUID) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, project_id, assigned_at
		 FROM assignments
		 WHERE user_id = $1 AND project_id = $2`,
		userID, projectID,
	).Scan(&a.ID, &a.UserID, &a.ProjectID, &a.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// DeleteAssignment removes a (user, project) assignment.
func (r *ProjectRepository) DeleteAssignment(ctx context.Context, userID, projectID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM assignments WHERE user_id = $1 AND project_id = $2`,
		userID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAssignedUsers returns the members of a project.
func (r *ProjectRepository) ListAssignedUsers(ctx context.Context, projectID uuid.UUID) ([]*model.AssignedUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, r.name
		 FROM assignments a
		 JOIN users u ON u.id = a.user_id
		 JOIN roles r ON r.id = u.role_id
		 WHERE a.project_id = $1
		 ORDER BY a.assigned_at ASC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.AssignedUser{}
	for rows.Next() {
		u := &model.AssignedUser{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
