package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/config"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")
	ErrIncorrectPassword   = errors.New("current password is incorrect")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidInviteToken  = errors.New("invite token is invalid or already used")
	ErrInvalidResetToken   = errors.New("reset token is invalid or expired")
)

// Claims extends JWT standard claims with the user's role snapshot. The
// snapshot makes permission checks local to the request; a role change only
// takes effect when the access token is reissued.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID          `json:"user_id"`
	Role   model.RoleSnapshot `json:"role"`
}

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type roleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.RoleWithPermissions, error)
	GetByName(ctx context.Context, name string) (*model.RoleWithPermissions, error)
}

type refreshTokenStore interface {
	Create(ctx context.Context, t *model.RefreshToken) error
	FindActive(ctx context.Context, token string, userID uuid.UUID) (*model.RefreshToken, error)
	Invalidate(ctx context.Context, id uuid.UUID) error
	InvalidateByValue(ctx context.Context, token string, userID uuid.UUID) error
}

type inviteStore interface {
	Create(ctx context.Context, inv *model.Invite) error
	FindPendingByToken(ctx context.Context, token string) (*model.Invite, error)
	MarkAccepted(ctx context.Context, id uuid.UUID) error
}

type resetTokenStore interface {
	Create(ctx context.Context, t *model.PasswordResetToken) error
	FindActiveByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type mailOutbox interface {
	Enqueue(ctx context.Context, msg *mail.Message)
}

// AuthService handles credentials, token issuance, invites and resets.
type AuthService struct {
	cfg           *config.Config
	users         userStore
	roles         roleStore
	refreshTokens refreshTokenStore
	invites       inviteStore
	resets        resetTokenStore
	outbox        mailOutbox
	tmpl          *mail.Templates
	log           zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	users userStore,
	roles roleStore,
	refreshTokens refreshTokenStore,
	invites inviteStore,
	resets resetTokenStore,
	outbox mailOutbox,
	tmpl *mail.Templates,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:           cfg,
		users:         users,
		roles:         roles,
		refreshTokens: refreshTokens,
		invites:       invites,
		resets:        resets,
		outbox:        outbox,
		tmpl:          tmpl,
		log:           log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// generateOpaqueToken returns 32 random bytes hex-encoded (64 characters).
// Used for refresh, invite and reset tokens.
func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateAccessToken signs a short-lived JWT carrying the role snapshot.
func (s *AuthService) GenerateAccessToken(user *model.User, role model.RoleSnapshot) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
		},
		UserID: user.ID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// issueTokenPair signs an access token and persists a fresh refresh token.
func (s *AuthService) issueTokenPair(ctx context.Context, user *model.User, role model.RoleSnapshot) (*model.TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(user, role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	value, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	refresh := &model.RefreshToken{
		Token:     value,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.refreshTokens.Create(ctx, refresh); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: value}, nil
}

// Login verifies the credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := s.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(ctx, user, role.Snapshot())
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshTokens rotates a refresh token: the presented token is invalidated
// and a brand-new pair is issued. A replayed token fails because rotation
// already expired it.
func (s *AuthService) RefreshTokens(ctx context.Context, req *model.RefreshTokensRequest) (*model.TokenPair, error) {
	current, err := s.refreshTokens.FindActive(ctx, req.RefreshToken, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := s.refreshTokens.Invalidate(ctx, current.ID); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user, role.Snapshot())
}

// Logout invalidates the presented refresh token. Logout always succeeds
// from the caller's perspective; an unknown or already-expired token is
// logged and ignored.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) {
	if err := s.refreshTokens.InvalidateByValue(ctx, refreshToken, userID); err != nil {
		s.log.Debug().Err(err).Stringer("user_id", userID).Msg("Logout token invalidation skipped")
	}
}

// ChangePassword rotates the caller's password after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.CheckPassword(user.PasswordHash, req.OldPassword); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// InviteUser creates a pending invite and emails the accept link. The
// address must not belong to an existing account.
func (s *AuthService) InviteUser(ctx context.Context, inviterID uuid.UUID, req *model.InviteUserRequest) (*model.Invite, error) {
	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	role, err := s.roles.GetByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	invite := &model.Invite{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		RoleID:      role.ID,
		RoleName:    role.Name,
		InvitedBy:   inviterID,
		Token:       token,
		Status:      model.InviteStatusPending,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.outbox.Enqueue(ctx, s.tmpl.Invite(invite.Email, invite.Name, invite.RoleName, token))
	return invite, nil
}

// AcceptInvite redeems a pending invite, creates the account and signs the
// user in. Redemption is first-wins; a second accept of the same token fails.
func (s *AuthService) AcceptInvite(ctx context.Context, req *model.AcceptInviteRequest) (*model.TokenPair, *model.User, error) {
	invite, err := s.invites.FindPendingByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidInviteToken
		}
		return nil, nil, err
	}

	// Flip the invite before creating the account so a concurrent accept
	// of the same token loses here, not on the email unique index.
	if err := s.invites.MarkAccepted(ctx, invite.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidInviteToken
		}
		return nil, nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &model.User{
		Name:            invite.Name,
		Email:           invite.Email,
		PhoneNumber:     invite.PhoneNumber,
		Address:         req.Address,
		KRAPinNumber:    req.KRAPinNumber,
		PasswordHash:    hash,
		EmailVerifiedAt: &now,
		RoleID:          invite.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}
	user.RoleName = invite.RoleName

	role, err := s.roles.GetByID(ctx, invite.RoleID)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(ctx, user, role.Snapshot())
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// ForgetPassword starts the self-service reset flow. It reveals nothing
// about whether the address is registered: an unknown email is a silent
// no-op with the same outcome.
func (s *AuthService) ForgetPassword(ctx context.Context, req *model.ForgetPasswordRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return err
	}

	reset := &model.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenExpiry),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	s.outbox.Enqueue(ctx, s.tmpl.PasswordReset(user.Email, user.Name, token))
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token
// is consumed on success.
func (s *AuthService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	reset, err := s.resets.FindActiveByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return err
	}

	if err := s.resets.Invalidate(ctx, reset.ID); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	return nil
}
