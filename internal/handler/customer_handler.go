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

// CustomerHandler handles customer and conversion endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ConvertLead godoc
// POST /api/v1/customers
// Converts an open lead into a customer and records the conversion.
func (h *CustomerHandler) ConvertLead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ConvertLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	customer, err := h.customerService.ConvertLead(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrLeadNotConvertible):
			response.Fail(c, http.StatusBadRequest, response.ErrLeadNotConvertible)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// ListCustomers godoc
// GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, customers)
}

// SearchCustomers godoc
// GET /api/v1/customers/search?name=&email=&status=
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	var req model.SearchCustomersRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	customers, err := h.customerService.Search(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, customers)
}

// GetCustomer godoc
// GET /api/v1/customers/:customerId
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// UpdateCustomer godoc
// PATCH /api/v1/customers/:customerId
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}

	var req model.UpdateCustomerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// DeleteCustomer godoc
// DELETE /api/v1/customers/:customerId
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// ListConversions godoc
// GET /api/v1/conversion-history
func (h *CustomerHandler) ListConversions(c *gin.Context) {
	histories, err := h.customerService.ListConversions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, histories)
}

// GetConversion godoc
// GET /api/v1/conversion-history/:historyId
func (h *CustomerHandler) GetConversion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	history, err := h.customerService.GetConversion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, history)
}

// ListConversionsByLead godoc
// GET /api/v1/conversion-history/lead/:leadId
func (h *CustomerHandler) ListConversionsByLead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "leadId")
	if !ok {
		return
	}

	histories, err := h.customerService.ListConversionsByLead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, histories)
}
