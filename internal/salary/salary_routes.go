package salary

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	salaries := r.Group("/salaries")
	salaries.Use(middleware.RequireCompany())
	{
		salaries.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead), handler.GetAll)
		salaries.GET("/preview", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate), handler.Preview)
		salaries.GET("/export", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionExport), handler.Export)
		salaries.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead), handler.GetById)
		salaries.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead), handler.GetPayslip)
		if redisClient != nil {
			salaries.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate),
				handler.Create,
			)
		} else {
			salaries.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate), handler.Create)
		}
		salaries.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate), handler.UpdateStatus)
	}
}
