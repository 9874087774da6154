package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// ErrRoleUnchanged is returned when a role update names the role the user
// already holds.
var ErrRoleUnchanged = errors.New("user already has this role")

type userAdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id, roleID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService handles account listing and administration.
type UserService struct {
	users  userAdminStore
	roles  roleStore
	outbox mailOutbox
	tmpl   *mail.Templates
	log    zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userAdminStore, roles roleStore, outbox mailOutbox, tmpl *mail.Templates, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		outbox: outbox,
		tmpl:   tmpl,
		log:    log.With().Str("component", "user_service").Logger(),
	}
}

// List returns every account with its role name.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get retrieves a single account.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateRole reassigns a user's role and notifies them by email. New
// permissions take effect on the user's next token issuance.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, req *model.UpdateUserRoleRequest) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.RoleName == req.Role {
		return nil, ErrRoleUnchanged
	}

	role, err := s.roles.GetByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, id, role.ID); err != nil {
		return nil, err
	}
	user.RoleID = role.ID
	user.RoleName = role.Name

	s.outbox.Enqueue(ctx, s.tmpl.RoleUpdate(user.Email, user.Name, role.Name))
	return user, nil
}

// Delete removes an account. Assignments cascade; refresh tokens die with
// the row so outstanding sessions cannot be refreshed.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
