package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upeohq/backoffice-backend/internal/middleware"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/response"
	"github.com/upeohq/backoffice-backend/internal/service"
	"github.com/upeohq/backoffice-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pair, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"userId": user.ID,
	})
}

// RefreshTokens godoc
// POST /api/v1/auth/refresh-token
// Rotates a refresh token: the presented token is consumed and a new pair issued.
func (h *AuthHandler) RefreshTokens(c *gin.Context) {
	var req model.RefreshTokensRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pair, err := h.authService.RefreshTokens(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"userId": req.UserID,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Invalidates the presented refresh token. Always reports success.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.LogoutRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.authService.Logout(c.Request.Context(), claims.UserID, req.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword godoc
// POST /api/v1/auth/change-password
// Rotates the caller's password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), claims.UserID, &req); err != nil {
		if errors.Is(err, service.ErrIncorrectPassword) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidCurrentPassword)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// InviteUser godoc
// POST /api/v1/auth/invite
// Creates a pending invite and emails the accept link.
func (h *AuthHandler) InviteUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.InviteUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	invite, err := h.authService.InviteUser(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User has been invited successfully",
		"user":    gin.H{"name": invite.Name, "email": invite.Email},
	})
}

// AcceptInvite godoc
// POST /api/v1/auth/accept-invite
// Redeems an invite token, creates the account and signs the user in.
func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var req model.AcceptInviteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pair, user, err := h.authService.AcceptInvite(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteToken):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidInviteToken)
		case errors.Is(err, service.ErrEmailTaken):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"userId": user.ID,
	})
}

// ForgetPassword godoc
// POST /api/v1/auth/forget-password
// Starts the reset flow. The reply never reveals whether the address exists.
func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req model.ForgetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ForgetPassword(c.Request.Context(), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If this email address is registered, you will receive a password reset link.",
	})
}

// ResetPassword godoc
// POST /api/v1/auth/reset-password
// Redeems a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidResetToken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password reset successfully. You can now log in with your new credentials",
	})
}
