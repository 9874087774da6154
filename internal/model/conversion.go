package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversionType distinguishes the first conversion of a lead from
// later re-engagements.
type ConversionType string

const (
	ConversionInitial ConversionType = "INITIAL"
	ConversionRepeat  ConversionType = "REPEAT"
)

// ConversionHistory is an immutable record of a lead-to-customer conversion.
type ConversionHistory struct {
	ID             uuid.UUID      `json:"id"`
	LeadID         uuid.UUID      `json:"lead_id"`
	CustomerID     uuid.UUID      `json:"customer_id"`
	ConversionDate time.Time      `json:"conversion_date"`
	Notes          string         `json:"notes,omitempty"`
	ConvertedBy    uuid.UUID      `json:"converted_by"`
	ConversionType ConversionType `json:"conversion_type"`
	CreatedAt      time.Time      `json:"created_at"`
}
