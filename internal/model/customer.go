package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus is the lifecycle state of a customer.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// Customer is a converted lead.
type Customer struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	CompanyName string         `json:"company_name"`
	Status      CustomerStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ConvertLeadRequest creates a customer from an unconverted lead.
type ConvertLeadRequest struct {
	LeadID uuid.UUID `json:"leadId" binding:"required"`
	Notes  string    `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest is the payload for a partial customer update.
type UpdateCustomerRequest struct {
	Name        string         `json:"name" binding:"omitempty,min=2,max=150"`
	Email       string         `json:"email" binding:"omitempty,email,max=255"`
	Phone       string         `json:"phone" binding:"omitempty,min=7,max=20"`
	CompanyName string         `json:"companyName" binding:"omitempty,min=2,max=150"`
	Status      CustomerStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SearchCustomersRequest carries the optional customer search filters.
type SearchCustomersRequest struct {
	Name   string         `form:"name" binding:"omitempty,max=150"`
	Email  string         `form:"email" binding:"omitempty,max=255"`
	Status CustomerStatus `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}
