package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
)

func TestUpdateUserRole(t *testing.T) {
	t.Parallel()

	roles := newFakeRoleStore(adminRole(), engineerRole())
	engineer := &model.User{
		Name:     "Eve Junior",
		Email:    "eve@example.com",
		RoleID:   roles.roles[model.RoleEngineer].ID,
		RoleName: model.RoleEngineer,
	}
	users := newFakeUserStore(engineer)
	outbox := &fakeOutbox{}
	svc := NewUserService(users, roles, outbox,
		mail.NewTemplates("Upeo Back Office", "http://localhost:3001"), zerolog.Nop())
	ctx := context.Background()

	// Reassigning the same role is a no-op error.
	_, err := svc.UpdateRole(ctx, engineer.ID, &model.UpdateUserRoleRequest{Role: model.RoleEngineer})
	assert.ErrorIs(t, err, ErrRoleUnchanged)
	assert.Empty(t, outbox.sent)

	updated, err := svc.UpdateRole(ctx, engineer.ID, &model.UpdateUserRoleRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.RoleName)
	assert.Equal(t, roles.roles[model.RoleAdmin].ID, updated.RoleID)

	stored, err := users.GetByID(ctx, engineer.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.roles[model.RoleAdmin].ID, stored.RoleID)

	// Role changes notify the user.
	require.Len(t, outbox.sent, 1)
	assert.Equal(t, "eve@example.com", outbox.sent[0].To)
	assert.Contains(t, outbox.sent[0].HTML, "<strong>ADMIN</strong>")
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	roles := newFakeRoleStore(engineerRole())
	user := &model.User{Name: "Eve Junior", Email: "eve@example.com"}
	users := newFakeUserStore(user)
	svc := NewUserService(users, roles, &fakeOutbox{},
		mail.NewTemplates("Upeo Back Office", "http://localhost:3001"), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err := svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting a missing user surfaces not-found.
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), repository.ErrNotFound)
}
