package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
)

// Assignment errors.
var (
	ErrAlreadyAssigned = errors.New("user is already assigned to this project")
	ErrNotAssigned     = errors.New("user is not assigned to this project")
)

type projectStore interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListAll(ctx context.Context) ([]*model.Project, error)
	ListAssignedTo(ctx context.Context, userID uuid.UUID) ([]*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProjectRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	GetAssignment(ctx context.Context, userID, projectID uuid.UUID) (*model.Assignment, error)
	DeleteAssignment(ctx context.Context, userID, projectID uuid.UUID) error
	ListAssignedUsers(ctx context.Context, projectID uuid.UUID) ([]*model.AssignedUser, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProjectService handles projects and their member assignments.
type ProjectService struct {
	projects projectStore
	users    userLookup
	outbox   mailOutbox
	tmpl     *mail.Templates
	log      zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects projectStore, users userLookup, outbox mailOutbox, tmpl *mail.Templates, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		outbox:   outbox,
		tmpl:     tmpl,
		log:      log.With().Str("component", "project_service").Logger(),
	}
}

// Create registers a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, creatorID uuid.UUID, req *model.CreateProjectRequest) (*model.Project, error) {
	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get retrieves a single project. ADMIN callers can fetch any project;
// everyone else must be assigned to it, and an unassigned project looks
// like a missing one.
func (s *ProjectService) Get(ctx context.Context, claims *Claims, id uuid.UUID) (*model.Project, error) {
	if claims.Role.Name != model.RoleAdmin {
		if _, err := s.projects.GetAssignment(ctx, claims.UserID, id); err != nil {
			return nil, err
		}
	}
	return s.projects.GetByID(ctx, id)
}

// List returns the projects visible to the caller. ADMIN sees everything;
// every other role sees only its assignments.
func (s *ProjectService) List(ctx context.Context, claims *Claims) ([]*model.Project, error) {
	if claims.Role.Name == model.RoleAdmin {
		return s.projects.ListAll(ctx)
	}
	return s.projects.ListAssignedTo(ctx, claims.UserID)
}

// Update applies a partial update to a project.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProjectRequest) (*model.Project, error) {
	if err := s.projects.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

// Delete removes a project and all of its assignments.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.projects.Delete(ctx, id)
}

// Assign adds a user, looked up by email, to a project and notifies them.
// A duplicate assignment returns ErrAlreadyAssigned.
func (s *ProjectService) Assign(ctx context.Context, projectID uuid.UUID, req *model.AssignProjectRequest) (*model.Assignment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{UserID: user.ID, ProjectID: projectID}
	if err := s.projects.CreateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicateAssignment) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	s.outbox.Enqueue(ctx, s.tmpl.ProjectAssignment(user.Email, user.Name, project.Name))
	return assignment, nil
}

// Unassign removes a user from a project and notifies them. Removing a user
// who is not assigned returns ErrNotAssigned.
func (s *ProjectService) Unassign(ctx context.Context, projectID uuid.UUID, req *model.UnassignProjectRequest) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := s.projects.DeleteAssignment(ctx, user.ID, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAssigned
		}
		return err
	}

	s.outbox.Enqueue(ctx, s.tmpl.ProjectUnassignment(user.Email, user.Name, project.Name))
	return nil
}

// ListAssignedUsers returns a project's members.
func (s *ProjectService) ListAssignedUsers(ctx context.Context, projectID uuid.UUID) ([]*model.AssignedUser, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projects.ListAssignedUsers(ctx, projectID)
}
