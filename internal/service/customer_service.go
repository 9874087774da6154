package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/model"
)

// ErrLeadNotConvertible is returned when converting a lead that is not in
// the NEW or IN_PROGRESS state.
var ErrLeadNotConvertible = errors.New("lead must be in NEW or IN_PROGRESS state")

type customerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Search(ctx context.Context, req *model.SearchCustomersRequest) ([]*model.Customer, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type conversionStore interface {
	Create(ctx context.Context, h *model.ConversionHistory) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ConversionHistory, error)
	List(ctx context.Context) ([]*model.ConversionHistory, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*model.ConversionHistory, error)
	CountByLead(ctx context.Context, leadID uuid.UUID) (int, error)
}

type leadConversionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error
}

// CustomerService handles customers and lead conversion.
type CustomerService struct {
	customers   customerStore
	leads       leadConversionStore
	conversions conversionStore
	log         zerolog.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers customerStore, leads leadConversionStore, conversions conversionStore, log zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers:   customers,
		leads:       leads,
		conversions: conversions,
		log:         log.With().Str("component", "customer_service").Logger(),
	}
}

// ConvertLead turns an open lead into an ACTIVE customer, writes the
// conversion record and marks the lead CONVERTED. Only leads in NEW or
// IN_PROGRESS can be converted.
func (s *CustomerService) ConvertLead(ctx context.Context, converterID uuid.UUID, req *model.ConvertLeadRequest) (*model.Customer, error) {
	lead, err := s.leads.GetByID(ctx, req.LeadID)
	if err != nil {
		return nil, err
	}

	if lead.Status != model.LeadStatusNew && lead.Status != model.LeadStatusInProgress {
		return nil, ErrLeadNotConvertible
	}

	customer := &model.Customer{
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		CompanyName: lead.CompanyName,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	// Any prior conversion record for this lead makes the new one a repeat.
	conversionType := model.ConversionInitial
	if prior, err := s.conversions.CountByLead(ctx, lead.ID); err != nil {
		return nil, err
	} else if prior > 0 {
		conversionType = model.ConversionRepeat
	}

	history := &model.ConversionHistory{
		LeadID:         lead.ID,
		CustomerID:     customer.ID,
		ConversionDate: time.Now(),
		Notes:          req.Notes,
		ConvertedBy:    converterID,
		ConversionType: conversionType,
	}
	if err := s.conversions.Create(ctx, history); err != nil {
		return nil, err
	}

	if err := s.leads.UpdateStatus(ctx, lead.ID, model.LeadStatusConverted); err != nil {
		return nil, err
	}

	return customer, nil
}

// Get retrieves a single customer.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.customers.List(ctx)
}

// Search filters customers by name, email and status.
func (s *CustomerService) Search(ctx context.Context, req *model.SearchCustomersRequest) ([]*model.Customer, error) {
	return s.customers.Search(ctx, req)
}

// Update applies a partial update to a customer.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	if err := s.customers.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

// Delete removes a customer and its interactions.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customers.Delete(ctx, id)
}

// ListConversions returns the full conversion log.
func (s *CustomerService) ListConversions(ctx context.Context) ([]*model.ConversionHistory, error) {
	return s.conversions.List(ctx)
}

// GetConversion returns a single conversion record.
func (s *CustomerService) GetConversion(ctx context.Context, id uuid.UUID) (*model.ConversionHistory, error) {
	return s.conversions.GetByID(ctx, id)
}

// ListConversionsByLead returns one lead's conversion records.
func (s *CustomerService) ListConversionsByLead(ctx context.Context, leadID uuid.UUID) ([]*model.ConversionHistory, error) {
	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.conversions.ListByLead(ctx, leadID)
}
