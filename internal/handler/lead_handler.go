package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upeohq/backoffice-backend/internal/middleware"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
	"github.com/upeohq/backoffice-backend/internal/response"
	"github.com/upeohq/backoffice-backend/internal/service"
	"github.com/upeohq/backoffice-backend/internal/validator"
)

// LeadHandler handles lead pipeline endpoints.
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLead godoc
// POST /api/v1/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, lead)
}

// ListLeads godoc
// GET /api/v1/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.leadService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, leads)
}

// SearchLeads godoc
// GET /api/v1/leads/search?name=&email=&status=
func (h *LeadHandler) SearchLeads(c *gin.Context) {
	var req model.SearchLeadsRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	leads, err := h.leadService.Search(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, leads)
}

// GetLead godoc
// GET /api/v1/leads/:leadId
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "leadId")
	if !ok {
		return
	}

	lead, err := h.leadService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// UpdateLead godoc
// PATCH /api/v1/leads/:leadId
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "leadId")
	if !ok {
		return
	}

	var req model.UpdateLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// DeleteLead godoc
// DELETE /api/v1/leads/:leadId
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "leadId")
	if !ok {
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}
