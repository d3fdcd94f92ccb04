package bootstrap

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process logger and installs it as zap's global.
// APP_ENV=production switches to JSON output at info level.
func NewLogger(name string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("service", name))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
