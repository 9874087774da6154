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

// InteractionHandler handles interaction endpoints.
type InteractionHandler struct {
	interactionService *service.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// CreateInteraction godoc
// POST /api/v1/interactions
// Logs a touch-point against an existing lead or customer.
func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateInteractionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	interaction, err := h.interactionService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, interaction)
}

// ListInteractions godoc
// GET /api/v1/interactions
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	interactions, err := h.interactionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, interactions)
}

// ListLeadInteractions godoc
// GET /api/v1/interactions/lead/:leadId
func (h *InteractionHandler) ListLeadInteractions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "leadId")
	if !ok {
		return
	}

	interactions, err := h.interactionService.ListByLead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, interactions)
}

// ListCustomerInteractions godoc
// GET /api/v1/interactions/customer/:customerId
func (h *InteractionHandler) ListCustomerInteractions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}

	interactions, err := h.interactionService.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, interactions)
}

// GetInteraction godoc
// GET /api/v1/interactions/:interactionId
func (h *InteractionHandler) GetInteraction(c *gin.Context) {
	id, ok := parseUUIDParam(c, "interactionId")
	if !ok {
		return
	}

	interaction, err := h.interactionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, interaction)
}

// UpdateInteraction godoc
// PATCH /api/v1/interactions/:interactionId
func (h *InteractionHandler) UpdateInteraction(c *gin.Context) {
	id, ok := parseUUIDParam(c, "interactionId")
	if !ok {
		return
	}

	var req model.UpdateInteractionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	interaction, err := h.interactionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, interaction)
}

// DeleteInteraction godoc
// DELETE /api/v1/interactions/:interactionId
func (h *InteractionHandler) DeleteInteraction(c *gin.Context) {
	id, ok := parseUUIDParam(c, "interactionId")
	if !ok {
		return
	}

	if err := h.interactionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Interaction deleted successfully"})
}
