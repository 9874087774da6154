package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/service"
)

func permissionRouter(claims *service.Claims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(ContextKeyClaims, claims)
			}
		},
		guard,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func engineerClaims() *service.Claims {
	return &service.Claims{
		Role: model.RoleSnapshot{
			Name: model.RoleEngineer,
			Permissions: []model.ResourceGrant{
				{Resource: model.ResourceProject, Actions: []model.Action{model.ActionRead}},
			},
		},
	}
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		claims   *service.Claims
		resource model.Resource
		action   model.Action
		want     int
	}{
		{"granted", engineerClaims(), model.ResourceProject, model.ActionRead, http.StatusOK},
		{"action not granted", engineerClaims(), model.ResourceProject, model.ActionUpdate, http.StatusForbidden},
		{"resource not granted", engineerClaims(), model.ResourceUser, model.ActionRead, http.StatusForbidden},
		{"no claims", nil, model.ResourceProject, model.ActionRead, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := permissionRouter(tt.claims, RequirePermission(tt.resource, tt.action))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAnyPermission(t *testing.T) {
	t.Parallel()

	guard := RequireAnyPermission(
		model.Requirement{Resource: model.ResourceUser, Action: model.ActionUpdate},
		model.Requirement{Resource: model.ResourceProject, Action: model.ActionRead},
	)
	r := permissionRouter(engineerClaims(), guard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	none := RequireAnyPermission(
		model.Requirement{Resource: model.ResourceUser, Action: model.ActionUpdate},
	)
	r = permissionRouter(engineerClaims(), none)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
