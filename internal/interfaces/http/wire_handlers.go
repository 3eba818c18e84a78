package http

import (
	"context"

	"github.com/caseguard/caseguard/internal/interfaces/http/handlers"
	workflowHandlers "github.com/caseguard/caseguard/internal/interfaces/http/handlers/workflow"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler   *handlers.HealthHandler
	workflowHandler *workflowHandlers.WorkflowHandler
	ruleHandler     *workflowHandlers.RuleHandler
	policyHandler   *workflowHandlers.PolicyHandler
	reportHandler   *workflowHandlers.ReportHandler
}

func (c *Container) newHandlers() *allHandlers {
	probes := map[string]handlers.Probe{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		probes["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	return &allHandlers{
		healthHandler:   handlers.NewHealthHandler(probes, c.log),
		workflowHandler: workflowHandlers.NewWorkflowHandler(c.ucs.engine, c.log.Named("http.workflow")),
		ruleHandler: workflowHandlers.NewRuleHandler(
			c.ucs.createRuleUC, c.ucs.updateRuleUC, c.ucs.setRuleEnabledUC, c.ucs.listRulesUC, c.log,
		),
		policyHandler: workflowHandlers.NewPolicyHandler(
			c.ucs.createPolicyUC, c.ucs.updatePolicyUC, c.ucs.setDefaultPolicyUC, c.ucs.listPoliciesUC, c.log,
		),
		reportHandler: workflowHandlers.NewReportHandler(c.ucs.listLogsUC, c.ucs.listEscalationsUC, c.log),
	}
}
