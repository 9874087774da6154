package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a long-lived opaque credential persisted per issuance.
// Invalidation sets expires_at to now; the row is kept for audit.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteStatus tracks whether an invite has been redeemed.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
)

// Invite is a single-use account-creation token sent by email.
type Invite struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phone_number"`
	RoleID      uuid.UUID    `json:"role_id"`
	RoleName    string       `json:"role_name,omitempty"`
	InvitedBy   uuid.UUID    `json:"invited_by"`
	Token       string       `json:"-"`
	Status      InviteStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// PasswordResetToken is a single-use self-service credential, valid for a
// short window after the forget-password request.
type PasswordResetToken struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is the credential set returned by login, refresh, and accept-invite.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// RefreshTokensRequest exchanges a persisted refresh token for a new pair.
type RefreshTokensRequest struct {
	RefreshToken string    `json:"refreshToken" binding:"required,len=64,hexadecimal"`
	UserID       uuid.UUID `json:"userId" binding:"required"`
}

// LogoutRequest names the refresh token to invalidate.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=128"`
}

// InviteUserRequest is the payload for inviting a new user.
type InviteUserRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,min=7,max=20"`
	Role        string `json:"role" binding:"required,oneof=ADMIN PROJECT_MANAGER ENGINEER"`
}

// AcceptInviteRequest redeems an invite token and completes the account.
type AcceptInviteRequest struct {
	Token        string `json:"token" binding:"required,len=64,hexadecimal"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
	Address      string `json:"address" binding:"required,max=255"`
	KRAPinNumber string `json:"kraPinNumber" binding:"required,max=30"`
}

// ForgetPasswordRequest starts the self-service reset flow.
type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required,len=64,hexadecimal"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}
