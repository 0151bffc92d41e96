package app

import (
	"database/sql"

	"go-hrpay/internal/activity"
	"go-hrpay/internal/attendance"
	"go-hrpay/internal/auth"
	"go-hrpay/internal/company"
	"go-hrpay/internal/config"
	"go-hrpay/internal/dashboard"
	"go-hrpay/internal/department"
	"go-hrpay/internal/employee"
	"go-hrpay/internal/leave"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/rbac"
	"go-hrpay/internal/salary"
	"go-hrpay/internal/shared/counter"
	"go-hrpay/internal/shared/storage"
	"go-hrpay/internal/shared/token"
	"go-hrpay/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	tokens *token.Manager,
) (activity.Recorder, error) {
	store := storage.NewLocal(cfg.UploadDir)

	// --- Repositories ---
	activityRepo := activity.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salaryRepo := salary.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(rbac.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	recorder := activity.NewRecorder(activityRepo)
	activityService := activity.NewService(activityRepo)
	authService := auth.NewService(authRepo, tokens, recorder)
	companyService := company.NewService(db, companyRepo, rdb, store, recorder)
	attendanceService := attendance.NewService(db, attendanceRepo, companyService, recorder, cfg.Timezone)
	dashboardService := dashboard.NewService(dashboardRepo, attendanceService, rdb, cfg.Timezone)
	departmentService := department.NewService(db, departmentRepo, rdb, recorder)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb, store, recorder)
	leaveService := leave.NewService(db, leaveRepo, companyRepo, outboxRepo, recorder)
	salaryService := salary.NewService(db, salaryRepo, companyService, attendanceService, outboxRepo, recorder)

	// --- Handlers ---
	activityHandler := activity.NewHandler(activityService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	companyHandler := company.NewHandler(companyService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	rbacHandler := rbac.NewHandler(rbacService)
	salaryHandler := salary.NewHandler(salaryService)
	uploadHandler := upload.NewHandler(cfg.UploadCallbackSecret, companyService, employeeService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		activity.RegisterRoutes(api, activityHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, zap.L().Named("employee.http"))
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService, rdb)
		upload.RegisterRoutes(api, uploadHandler)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	dashboard.RegisterRoutes(router, dashboardHandler, rbacService)

	return recorder, nil
}
