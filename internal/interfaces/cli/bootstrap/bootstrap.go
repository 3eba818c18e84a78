// Package bootstrap holds the start-up steps shared by every sub-command:
// config, logger and database.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/infrastructure/config"
	"github.com/caseguard/caseguard/internal/infrastructure/database"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// GinMode maps a deployment environment onto a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// Init loads config and configures the process logger.
func Init(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase is Init plus the process-wide database connection. The
// caller closes it with database.Close.
func InitWithDatabase(env string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(env)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}
