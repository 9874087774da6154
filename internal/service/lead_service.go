package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/model"
)

type leadStore interface {
	Create(ctx context.Context, l *model.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	List(ctx context.Context) ([]*model.Lead, error)
	Search(ctx context.Context, req *model.SearchLeadsRequest) ([]*model.Lead, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeadService handles the lead pipeline.
type LeadService struct {
	leads leadStore
	log   zerolog.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(leads leadStore, log zerolog.Logger) *LeadService {
	return &LeadService{
		leads: leads,
		log:   log.With().Str("component", "lead_service").Logger(),
	}
}

// Create registers a lead in NEW status, attributed to the caller.
func (s *LeadService) Create(ctx context.Context, creatorID uuid.UUID, req *model.CreateLeadRequest) (*model.Lead, error) {
	lead := &model.Lead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		AddedBy:     creatorID,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Get retrieves a single lead.
func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

// List returns all leads.
func (s *LeadService) List(ctx context.Context) ([]*model.Lead, error) {
	return s.leads.List(ctx)
}

// Search filters leads by name, email and status.
func (s *LeadService) Search(ctx context.Context, req *model.SearchLeadsRequest) ([]*model.Lead, error) {
	return s.leads.Search(ctx, req)
}

// Update applies a partial update to a lead.
func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) (*model.Lead, error) {
	if err := s.leads.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.leads.GetByID(ctx, id)
}

// Delete removes a lead and its interactions.
func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.leads.Delete(ctx, id)
}
