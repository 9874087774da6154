package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account. Every user has exactly one role.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phone_number"`
	Address         string     `json:"address,omitempty"`
	KRAPinNumber    string     `json:"kra_pin_number,omitempty"`
	PasswordHash    string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	RoleID          uuid.UUID  `json:"role_id"`
	RoleName        string     `json:"role_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// UpdateUserRoleRequest is the payload for an administrative role reassignment.
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN PROJECT_MANAGER ENGINEER"`
}
