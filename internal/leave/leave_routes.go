package leave

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.RequireCompany())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetById)
		leaves.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate), handler.Create)
		// employees reach this to cancel; the service narrows what each role may do
		leaves.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCancel), handler.UpdateStatus)
	}

	policies := r.Group("/leave-policies")
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeavePolicy, rbac.ActionRead), handler.ListPolicies)
		policies.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeavePolicy, rbac.ActionCreate), handler.CreatePolicy)
		policies.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeavePolicy, rbac.ActionUpdate), handler.UpdatePolicy)
	}
}
