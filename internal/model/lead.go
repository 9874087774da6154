package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the pipeline state of a lead.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusInProgress LeadStatus = "IN_PROGRESS"
	LeadStatusConverted  LeadStatus = "CONVERTED"
	LeadStatusClosed     LeadStatus = "CLOSED"
)

// Lead is a prospective customer.
type Lead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	CompanyName string     `json:"company_name"`
	Status      LeadStatus `json:"status"`
	AddedBy     uuid.UUID  `json:"added_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateLeadRequest is the payload for registering a lead. Status always
// starts at NEW.
type CreateLeadRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Phone       string `json:"phone" binding:"required,min=7,max=20"`
	CompanyName string `json:"companyName" binding:"required,min=2,max=150"`
}

// UpdateLeadRequest is the payload for a partial lead update.
type UpdateLeadRequest struct {
	Name        string     `json:"name" binding:"omitempty,min=2,max=150"`
	Email       string     `json:"email" binding:"omitempty,email,max=255"`
	Phone       string     `json:"phone" binding:"omitempty,min=7,max=20"`
	CompanyName string     `json:"companyName" binding:"omitempty,min=2,max=150"`
	Status      LeadStatus `json:"status" binding:"omitempty,oneof=NEW IN_PROGRESS CONVERTED CLOSED"`
}

// SearchLeadsRequest carries the optional lead search filters.
type SearchLeadsRequest struct {
	Name   string     `form:"name" binding:"omitempty,max=150"`
	Email  string     `form:"email" binding:"omitempty,max=255"`
	Status LeadStatus `form:"status" binding:"omitempty,oneof=NEW IN_PROGRESS CONVERTED CLOSED"`
}
