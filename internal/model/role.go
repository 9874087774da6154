package model

import (
	"time"

	"github.com/google/uuid"
)

// Seeded role names. Roles are reference data created at deployment.
const (
	RoleAdmin          = "ADMIN"
	RoleProjectManager = "PROJECT_MANAGER"
	RoleEngineer       = "ENGINEER"
)

// Role is an RBAC role.
type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleWithPermissions extends Role with its resource grants.
type RoleWithPermissions struct {
	*Role
	Permissions []ResourceGrant `json:"permissions"`
}

// Snapshot returns the token-embeddable view of the role.
func (r RoleWithPermissions) Snapshot() RoleSnapshot {
	return RoleSnapshot{
		Name:        r.Name,
		Permissions: r.Permissions,
	}
}
