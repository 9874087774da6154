package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/response"
)

// RequirePermission checks that the token's role snapshot grants the action
// on the resource. Evaluation is local to the token; a stale snapshot keeps
// its grants until the token is reissued.
func RequirePermission(resource model.Resource, action model.Action) gin.HandlerFunc {
	required := model.Requirement{Resource: resource, Action: action}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !model.Authorize(claims.Role, required) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}

// RequireAnyPermission passes when the role snapshot grants at least one of
// the requirements.
func RequireAnyPermission(requirements ...model.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, required := range requirements {
			if model.Authorize(claims.Role, required) {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
	}
}
