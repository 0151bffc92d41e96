package dashboard

import (
	"go-hrpay/internal/domain"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the role dashboards on the engine root. AuthGuard
// has already redirected callers away from prefixes that are not theirs.
func RegisterRoutes(r gin.IRouter, handler *Handler, rbacService rbac.Service) {
	read := middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead)

	r.GET(domain.RolePlatformAdmin.HomePrefix(), read, handler.SuperAdmin)
	r.GET(domain.RoleCompanyAdmin.HomePrefix(), read, handler.Admin)
	r.GET(domain.RoleEmployee.HomePrefix(), read, handler.User)
}
