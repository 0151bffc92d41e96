package company

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	companies := r.Group("/companies")
	{
		companies.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionCreate),
			handler.Create,
		)

		companies.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionRead),
			handler.GetAll,
		)

		companies.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionRead),
			handler.GetByID,
		)

		companies.GET("/:id/settings",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompanySettings, rbac.ActionRead),
			handler.GetSettings,
		)

		// No RBAC gate: the service answers 401 for callers that cannot
		// manage the company.
		companies.PUT("/:id/settings",
			middleware.RateLimitByUser(0.5, 2),
			handler.UpdateSettings,
		)

		companies.PUT("/:id/logo",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionUpdate),
			handler.UpdateLogo,
		)
	}
}
