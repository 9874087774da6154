package model

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType classifies how a lead or customer was contacted.
type InteractionType string

const (
	InteractionPhoneCall InteractionType = "PHONE_CALL"
	InteractionEmail     InteractionType = "EMAIL"
	InteractionMeeting   InteractionType = "MEETING"
)

// Interaction records a touch-point with a lead or a customer.
// Exactly one of LeadID and CustomerID is set.
type Interaction struct {
	ID              uuid.UUID       `json:"id"`
	LeadID          *uuid.UUID      `json:"lead_id,omitempty"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	InteractionType InteractionType `json:"interaction_type"`
	Date            time.Time       `json:"date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	LeadName        string          `json:"lead_name,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CreatorName     string          `json:"creator_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateInteractionRequest is the payload for logging an interaction.
type CreateInteractionRequest struct {
	LeadID          *uuid.UUID      `json:"leadId" binding:"required_without=CustomerID,excluded_with=CustomerID"`
	CustomerID      *uuid.UUID      `json:"customerId" binding:"required_without=LeadID"`
	InteractionType InteractionType `json:"interactionType" binding:"required,oneof=PHONE_CALL EMAIL MEETING"`
	Date            time.Time       `json:"date" binding:"required"`
	Notes           string          `json:"notes" binding:"max=2000"`
}

// UpdateInteractionRequest is the payload for a partial interaction update.
type UpdateInteractionRequest struct {
	InteractionType InteractionType `json:"interactionType" binding:"omitempty,oneof=PHONE_CALL EMAIL MEETING"`
	Date            *time.Time      `json:"date" binding:"omitempty"`
	Notes           string          `json:"notes" binding:"omitempty,max=2000"`
}
