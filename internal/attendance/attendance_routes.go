package attendance

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RequireCompany(), middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetAll)
		attendances.POST("/clock-in", middleware.RequireCompany(), middleware.RateLimitByUser(rate.Limit(1), 3), middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.ClockIn)
		attendances.POST("/clock-out", middleware.RequireCompany(), middleware.RateLimitByUser(rate.Limit(1), 3), middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.ClockOut)
		// platform admins have no company and pass company_id in the body
		attendances.POST("/evaluate", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionEvaluate), h.Evaluate)
	}
}
