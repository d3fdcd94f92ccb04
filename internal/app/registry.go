package app

import (
	"database/sql"
	"os"

	"go-flexile/internal/captable"
	"go-flexile/internal/company"
	"go-flexile/internal/dividend"
	"go-flexile/internal/messaging/kafka"
	"go-flexile/internal/rbac"
	"go-flexile/internal/rbac/infra"
	"go-flexile/internal/report"
	"go-flexile/internal/role"
	"go-flexile/internal/shared/sequence"
	"go-flexile/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	sequenceRepo := sequence.NewRepository(gormDB)
	capTableRepo := captable.NewRepository(gormDB)
	dividendRepo := dividend.NewRepository(gormDB)
	roleRepo := role.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(os.Getenv("RBAC_MODEL_PATH"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	companyService := company.NewService(companyRepo, rdb, logger)
	userService := user.NewService(userRepo)
	capTableService := captable.NewService(db, capTableRepo, userRepo, sequenceRepo, outboxRepo, logger)
	dividendService := dividend.NewService(db, dividendRepo, outboxRepo, logger)
	roleService := role.NewService(db, roleRepo, userRepo, outboxRepo, logger)
	reportService := report.NewService(reportRepo, rdb, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	userHandler := user.NewHandler(userService)
	capTableHandler := captable.NewHandler(capTableService, rdb, logger)
	dividendHandler := dividend.NewHandler(dividendService, rdb, logger)
	roleHandler := role.NewHandler(roleService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
		captable.RegisterRoutes(api, capTableHandler, rbacService, rdb)
		dividend.RegisterRoutes(api, dividendHandler, rbacService, rdb)
		role.RegisterRoutes(api, roleHandler, rbacService)
		report.RegisterRoutes(api, reportHandler)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
