package handlers

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gastosapp/gastos_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", GetHealth)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	// API v1 routes behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerCompanyRoutes(v1, services.Company)
	registerCurrencyRoutes(v1, services.Currency)
	registerCostCenterRoutes(v1, services.CostCenter, services.User)
	registerConceptRoutes(v1, services.Concept, services.User)
	RegisterExpenseRoutes(v1, services.Expense, services.Document)
	registerFundRoutes(v1, services.Fund)
	registerReportingRoutes(v1, services.Reporting, services.User)
	registerDocumentCaptureRoutes(v1, services.Document)
}

// catalogWriteRoles are the roles allowed to mutate company-level catalogs.
var catalogWriteRoles = []domain.Role{domain.RoleResponsable, domain.RoleAdmin}
