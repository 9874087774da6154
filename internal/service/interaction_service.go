package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/model"
)

type interactionStore interface {
	Create(ctx context.Context, i *model.Interaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Interaction, error)
	List(ctx context.Context) ([]*model.Interaction, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*model.Interaction, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Interaction, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateInteractionRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type leadLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)
}

type customerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// InteractionService records touch-points against leads and customers.
type InteractionService struct {
	interactions interactionStore
	leads        leadLookup
	customers    customerLookup
	log          zerolog.Logger
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(interactions interactionStore, leads leadLookup, customers customerLookup, log zerolog.Logger) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		leads:        leads,
		customers:    customers,
		log:          log.With().Str("component", "interaction_service").Logger(),
	}
}

// Create logs an interaction against an existing lead or customer.
func (s *InteractionService) Create(ctx context.Context, creatorID uuid.UUID, req *model.CreateInteractionRequest) (*model.Interaction, error) {
	if req.LeadID != nil {
		if _, err := s.leads.GetByID(ctx, *req.LeadID); err != nil {
			return nil, err
		}
	} else if req.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
	}

	interaction := &model.Interaction{
		LeadID:          req.LeadID,
		CustomerID:      req.CustomerID,
		InteractionType: req.InteractionType,
		Date:            req.Date,
		Notes:           req.Notes,
		CreatedBy:       creatorID,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}
	return s.interactions.GetByID(ctx, interaction.ID)
}

// Get retrieves a single interaction.
func (s *InteractionService) Get(ctx context.Context, id uuid.UUID) (*model.Interaction, error) {
	return s.interactions.GetByID(ctx, id)
}

// List returns every interaction.
func (s *InteractionService) List(ctx context.Context) ([]*model.Interaction, error) {
	return s.interactions.List(ctx)
}

// ListByLead returns a lead's interactions.
func (s *InteractionService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*model.Interaction, error) {
	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.interactions.ListByLead(ctx, leadID)
}

// ListByCustomer returns a customer's interactions.
func (s *InteractionService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Interaction, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.interactions.ListByCustomer(ctx, customerID)
}

// Update applies a partial update to an interaction.
func (s *InteractionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateInteractionRequest) (*model.Interaction, error) {
	if err := s.interactions.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.interactions.GetByID(ctx, id)
}

// Delete removes an interaction.
func (s *InteractionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.interactions.Delete(ctx, id)
}
