package main

import (
	"go-flexile/internal/app"
	"go-flexile/internal/bootstrap"
	"go-flexile/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger("flexile-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	if err := app.BuildApp(r); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(r, bootstrap.ServerConfigFromEnv(), bootstrap.NewZapAuditLogger(logger))
}
