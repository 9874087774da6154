package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/upeohq/backoffice-backend/internal/config"
	"github.com/upeohq/backoffice-backend/internal/handler"
	"github.com/upeohq/backoffice-backend/internal/middleware"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/response"
	"github.com/upeohq/backoffice-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Project     *handler.ProjectHandler
	Lead        *handler.LeadHandler
	Customer    *handler.CustomerHandler
	Interaction *handler.InteractionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Rate Limited) ──────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh-token", handlers.Auth.RefreshTokens)
		auth.POST("/accept-invite", handlers.Auth.AcceptInvite)
		auth.POST("/forget-password", handlers.Auth.ForgetPassword)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)

		// Authenticated credential routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.POST("/change-password", middleware.RequireAuth(authService), handlers.Auth.ChangePassword)
		auth.POST("/invite",
			middleware.RequireAuth(authService),
			middleware.RequirePermission(model.ResourceUser, model.ActionCreate),
			handlers.Auth.InviteUser)
	}

	// ─── 2. Users (JWT + RBAC) ─────────────────────────────────────────
	users := router.Group("/api/v1/users")
	users.Use(middleware.RequireAuth(authService))
	{
		users.GET("/me", handlers.User.Me)
		users.GET("",
			middleware.RequirePermission(model.ResourceUser, model.ActionRead),
			handlers.User.ListUsers)
		users.GET("/:userId",
			middleware.RequirePermission(model.ResourceUser, model.ActionRead),
			handlers.User.GetUser)
		users.PATCH("/:userId/role",
			middleware.RequirePermission(model.ResourceUser, model.ActionUpdate),
			handlers.User.UpdateUserRole)
		users.DELETE("/:userId",
			middleware.RequirePermission(model.ResourceUser, model.ActionDelete),
			handlers.User.DeleteUser)
	}

	// ─── 3. Projects (JWT + RBAC) ──────────────────────────────────────
	projects := router.Group("/api/v1/projects")
	projects.Use(middleware.RequireAuth(authService))
	{
		projects.POST("",
			middleware.RequirePermission(model.ResourceProject, model.ActionCreate),
			handlers.Project.CreateProject)
		projects.GET("",
			middleware.RequirePermission(model.ResourceProject, model.ActionRead),
			handlers.Project.ListProjects)
		projects.GET("/:projectId",
			middleware.RequirePermission(model.ResourceProject, model.ActionRead),
			handlers.Project.GetProject)
		projects.PATCH("/:projectId",
			middleware.RequirePermission(model.ResourceProject, model.ActionUpdate),
			handlers.Project.UpdateProject)
		projects.DELETE("/:projectId",
			middleware.RequirePermission(model.ResourceProject, model.ActionDelete),
			handlers.Project.DeleteProject)

		projects.POST("/:projectId/assign",
			middleware.RequirePermission(model.ResourceAssignment, model.ActionCreate),
			handlers.Project.AssignProject)
		projects.POST("/:projectId/unassign",
			middleware.RequirePermission(model.ResourceAssignment, model.ActionDelete),
			handlers.Project.UnassignProject)
		projects.GET("/:projectId/users",
			middleware.RequirePermission(model.ResourceAssignment, model.ActionRead),
			handlers.Project.ListAssignedUsers)
	}

	// ─── 4. Leads (JWT + RBAC) ─────────────────────────────────────────
	leads := router.Group("/api/v1/leads")
	leads.Use(middleware.RequireAuth(authService))
	{
		leads.POST("",
			middleware.RequirePermission(model.ResourceLead, model.ActionCreate),
			handlers.Lead.CreateLead)
		leads.GET("",
			middleware.RequirePermission(model.ResourceLead, model.ActionRead),
			handlers.Lead.ListLeads)
		leads.GET("/search",
			middleware.RequirePermission(model.ResourceLead, model.ActionRead),
			handlers.Lead.SearchLeads)
		leads.GET("/:leadId",
			middleware.RequirePermission(model.ResourceLead, model.ActionRead),
			handlers.Lead.GetLead)
		leads.PATCH("/:leadId",
			middleware.RequirePermission(model.ResourceLead, model.ActionUpdate),
			handlers.Lead.UpdateLead)
		leads.DELETE("/:leadId",
			middleware.RequirePermission(model.ResourceLead, model.ActionDelete),
			handlers.Lead.DeleteLead)
	}

	// ─── 5. Customers + Conversion History (JWT + RBAC) ────────────────
	customers := router.Group("/api/v1/customers")
	customers.Use(middleware.RequireAuth(authService))
	{
		customers.POST("",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionCreate),
			handlers.Customer.ConvertLead)
		customers.GET("",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionRead),
			handlers.Customer.ListCustomers)
		customers.GET("/search",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionRead),
			handlers.Customer.SearchCustomers)
		customers.GET("/:customerId",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionRead),
			handlers.Customer.GetCustomer)
		customers.PATCH("/:customerId",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionUpdate),
			handlers.Customer.UpdateCustomer)
		customers.DELETE("/:customerId",
			middleware.RequirePermission(model.ResourceCustomer, model.ActionDelete),
			handlers.Customer.DeleteCustomer)
	}

	conversions := router.Group("/api/v1/conversion-history")
	conversions.Use(
		middleware.RequireAuth(authService),
		middleware.RequirePermission(model.ResourceCustomer, model.ActionRead),
	)
	{
		conversions.GET("", handlers.Customer.ListConversions)
		conversions.GET("/lead/:leadId", handlers.Customer.ListConversionsByLead)
		conversions.GET("/:historyId", handlers.Customer.GetConversion)
	}

	// ─── 6. Interactions (JWT + RBAC) ──────────────────────────────────
	interactions := router.Group("/api/v1/interactions")
	interactions.Use(middleware.RequireAuth(authService))
	{
		interactions.POST("",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionCreate),
			handlers.Interaction.CreateInteraction)
		interactions.GET("",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionRead),
			handlers.Interaction.ListInteractions)
		interactions.GET("/lead/:leadId",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionRead),
			handlers.Interaction.ListLeadInteractions)
		interactions.GET("/customer/:customerId",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionRead),
			handlers.Interaction.ListCustomerInteractions)
		interactions.GET("/:interactionId",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionRead),
			handlers.Interaction.GetInteraction)
		interactions.PATCH("/:interactionId",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionUpdate),
			handlers.Interaction.UpdateInteraction)
		interactions.DELETE("/:interactionId",
			middleware.RequirePermission(model.ResourceInteraction, model.ActionDelete),
			handlers.Interaction.DeleteInteraction)
	}

	return router
}
