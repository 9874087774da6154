package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is a unit of work users get assigned to.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatorName string    `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Assignment links a user to a project. At most one per (user, project).
type Assignment struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// AssignedUser is the projection returned when listing a project's members.
type AssignedUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	RoleName string    `json:"role_name"`
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateProjectRequest is the payload for a partial project update.
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=150"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// AssignProjectRequest assigns a user, looked up by email, to a project.
type AssignProjectRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UnassignProjectRequest removes a user's project assignment.
type UnassignProjectRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}
