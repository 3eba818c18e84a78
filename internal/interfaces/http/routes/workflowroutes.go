package routes

import (
	"github.com/gin-gonic/gin"

	workflowhandlers "github.com/caseguard/caseguard/internal/interfaces/http/handlers/workflow"
	"github.com/caseguard/caseguard/internal/interfaces/http/middleware"
)

type WorkflowRouteConfig struct {
	WorkflowHandler *workflowhandlers.WorkflowHandler
	RuleHandler     *workflowhandlers.RuleHandler
	PolicyHandler   *workflowhandlers.PolicyHandler
	ReportHandler   *workflowhandlers.ReportHandler
	// RateLimiter is optional; nil disables limiting on the engine endpoint.
	RateLimiter *middleware.RateLimiter
}

func SetupWorkflowRoutes(engine *gin.Engine, config *WorkflowRouteConfig) {
	v1 := engine.Group("/api/v1")
	v1.Use(middleware.RequireOrganization())

	workflowChain := []gin.HandlerFunc{}
	if config.RateLimiter != nil {
		workflowChain = append(workflowChain, config.RateLimiter.Limit())
	}
	workflowChain = append(workflowChain, config.WorkflowHandler.HandleWorkflow)
	v1.POST("/workflow", workflowChain...)

	rules := v1.Group("/rules")
	{
		rules.GET("", config.RuleHandler.ListRules)
		rules.POST("", config.RuleHandler.CreateRule)

		rules.POST("/:id/enable", config.RuleHandler.EnableRule)
		rules.POST("/:id/disable", config.RuleHandler.DisableRule)

		rules.PUT("/:id", config.RuleHandler.UpdateRule)
	}

	policies := v1.Group("/sla-policies")
	{
		policies.GET("", config.PolicyHandler.ListPolicies)
		policies.POST("", config.PolicyHandler.CreatePolicy)

		policies.POST("/:id/default", config.PolicyHandler.SetDefaultPolicy)

		policies.PUT("/:id", config.PolicyHandler.UpdatePolicy)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("/:id/logs", config.ReportHandler.ListLogs)
		reports.GET("/:id/escalations", config.ReportHandler.ListEscalations)
	}
}
