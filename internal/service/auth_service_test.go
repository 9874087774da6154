package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upeohq/backoffice-backend/internal/config"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

type authFixture struct {
	svc     *AuthService
	users   *fakeUserStore
	roles   *fakeRoleStore
	refresh *fakeRefreshStore
	invites *fakeInviteStore
	resets  *fakeResetStore
	outbox  *fakeOutbox
	admin   *model.User
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		ResetTokenExpiry:   10 * time.Minute,
		BcryptCost:         bcrypt.MinCost,
		AppName:            "Upeo Back Office",
		WebBaseURL:         "http://localhost:3001",
	}
}

func adminRole() *model.RoleWithPermissions {
	grants := make([]model.ResourceGrant, 0, len(model.AllResources))
	for _, res := range model.AllResources {
		grants = append(grants, model.ResourceGrant{Resource: res, Actions: model.AllActions})
	}
	return &model.RoleWithPermissions{
		Role:        &model.Role{Name: model.RoleAdmin},
		Permissions: grants,
	}
}

func engineerRole() *model.RoleWithPermissions {
	return &model.RoleWithPermissions{
		Role: &model.Role{Name: model.RoleEngineer},
		Permissions: []model.ResourceGrant{
			{Resource: model.ResourceProject, Actions: []model.Action{model.ActionRead}},
		},
	}
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	roles := newFakeRoleStore(adminRole(), engineerRole())
	adminRoleID := roles.roles[model.RoleAdmin].ID

	admin := &model.User{
		Name:         "Ada Root",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		RoleID:       adminRoleID,
		RoleName:     model.RoleAdmin,
	}
	users := newFakeUserStore(admin)

	f := &authFixture{
		users:   users,
		roles:   roles,
		refresh: newFakeRefreshStore(),
		invites: newFakeInviteStore(),
		resets:  newFakeResetStore(),
		outbox:  &fakeOutbox{},
		admin:   admin,
	}

	cfg := testConfig()
	f.svc = NewAuthService(cfg, f.users, f.roles, f.refresh, f.invites, f.resets,
		f.outbox, mail.NewTemplates(cfg.AppName, cfg.WebBaseURL), zerolog.Nop())
	return f
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	pair, user, err := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, f.admin.ID, user.ID)
	assert.Len(t, pair.RefreshToken, 64)

	claims, err := f.svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role.Name)
	assert.True(t, model.Authorize(claims.Role, model.Requirement{
		Resource: model.ResourceLead,
		Action:   model.ActionDelete,
	}))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	_, _, wrongPassword := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: "not-the-password",
	})
	_, _, unknownEmail := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshTokenRotation(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	pair, _, err := f.svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: testPassword})
	require.NoError(t, err)

	next, err := f.svc.RefreshTokens(ctx, &model.RefreshTokensRequest{
		RefreshToken: pair.RefreshToken,
		UserID:       f.admin.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Replaying the rotated-out token must fail.
	_, err = f.svc.RefreshTokens(ctx, &model.RefreshTokensRequest{
		RefreshToken: pair.RefreshToken,
		UserID:       f.admin.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The fresh token still works.
	_, err = f.svc.RefreshTokens(ctx, &model.RefreshTokensRequest{
		RefreshToken: next.RefreshToken,
		UserID:       f.admin.ID,
	})
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	pair, _, err := f.svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: testPassword})
	require.NoError(t, err)

	f.svc.Logout(ctx, f.admin.ID, pair.RefreshToken)

	_, err = f.svc.RefreshTokens(ctx, &model.RefreshTokensRequest{
		RefreshToken: pair.RefreshToken,
		UserID:       f.admin.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Unknown tokens are swallowed; logout never errors.
	f.svc.Logout(ctx, f.admin.ID, "0000000000000000000000000000000000000000000000000000000000000000")
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, f.admin.ID, &model.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = f.svc.ChangePassword(ctx, f.admin.ID, &model.ChangePasswordRequest{
		OldPassword: testPassword,
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestInviteFlow(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	invite, err := f.svc.InviteUser(ctx, f.admin.ID, &model.InviteUserRequest{
		Name:        "Eve Junior",
		Email:       "eve@example.com",
		PhoneNumber: "+254700000000",
		Role:        model.RoleEngineer,
	})
	require.NoError(t, err)
	assert.Len(t, invite.Token, 64)

	require.Len(t, f.outbox.sent, 1)
	assert.Equal(t, "eve@example.com", f.outbox.sent[0].To)
	assert.Contains(t, f.outbox.sent[0].HTML, invite.Token)

	accept := &model.AcceptInviteRequest{
		Token:        invite.Token,
		Password:     "eve-password",
		Address:      "12 Riverside Dr",
		KRAPinNumber: "A012345678Z",
	}
	pair, user, err := f.svc.AcceptInvite(ctx, accept)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "eve@example.com", user.Email)
	assert.Equal(t, model.RoleEngineer, user.RoleName)

	// Invite tokens are single-use.
	_, _, err = f.svc.AcceptInvite(ctx, accept)
	assert.ErrorIs(t, err, ErrInvalidInviteToken)

	// The new account can log in.
	_, _, err = f.svc.Login(ctx, &model.LoginRequest{Email: "eve@example.com", Password: "eve-password"})
	assert.NoError(t, err)
}

func TestInviteExistingEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	_, err := f.svc.InviteUser(context.Background(), f.admin.ID, &model.InviteUserRequest{
		Name:        "Ada Again",
		Email:       "ada@example.com",
		PhoneNumber: "+254700000000",
		Role:        model.RoleEngineer,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	_, _, err := f.svc.AcceptInvite(context.Background(), &model.AcceptInviteRequest{
		Token:        "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		Password:     "whatever1",
		Address:      "nowhere",
		KRAPinNumber: "A0Z",
	})
	assert.ErrorIs(t, err, ErrInvalidInviteToken)
}

func TestForgetPasswordDoesNotRevealAccounts(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	// Unknown address: same nil outcome, nothing sent.
	err := f.svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Empty(t, f.outbox.sent)

	// Known address: still nil, reset mail queued.
	err = f.svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	require.Len(t, f.outbox.sent, 1)
	assert.Equal(t, "ada@example.com", f.outbox.sent[0].To)
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "ada@example.com"}))

	var token string
	for value := range f.resets.tokens {
		token = value
	}
	require.NotEmpty(t, token)

	err := f.svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: token, Password: "reset-pass-1"})
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: "reset-pass-1"})
	assert.NoError(t, err)

	// Reset tokens are single-use.
	err = f.svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: token, Password: "reset-pass-2"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "ada@example.com"}))
	for _, reset := range f.resets.tokens {
		reset.ExpiresAt = time.Now().Add(-time.Minute)
	}

	for token := range f.resets.tokens {
		err := f.svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: token, Password: "too-late-1"})
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	}
}
