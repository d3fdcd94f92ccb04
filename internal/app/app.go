package app

import (
	"os"

	"go-flexile/internal/middleware"
	"go-flexile/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the API's infrastructure and mounts every module on
// router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, sqlDB, err := connectDatabase()
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), connectRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient, zap.L())
}
