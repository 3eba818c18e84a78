package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/caseguard/caseguard/docs"
	"github.com/caseguard/caseguard/internal/interfaces/http/middleware"
	"github.com/caseguard/caseguard/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/version", c.hdlrs.healthHandler.Version)
	if c.svcs.metricsHandler != nil {
		c.engine.GET("/metrics", gin.WrapH(c.svcs.metricsHandler))
	}

	routes.SetupWorkflowRoutes(c.engine, &routes.WorkflowRouteConfig{
		WorkflowHandler: c.hdlrs.workflowHandler,
		RuleHandler:     c.hdlrs.ruleHandler,
		PolicyHandler:   c.hdlrs.policyHandler,
		ReportHandler:   c.hdlrs.reportHandler,
		RateLimiter:     c.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
