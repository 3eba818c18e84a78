package usecases

import (
	"context"
	"time"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/domain/workflow"
)

// EscalationGuard is the per-report escalation arena. Acquire claims key
// for ttl and reports false when another caller holds it.
type EscalationGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Notifier delivers workflow events to the notification dispatcher.
type Notifier interface {
	Notify(ctx context.Context, event workflow.WorkflowEvent) error
}

// Metrics receives engine counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveRequest(action, outcome string, elapsed time.Duration)
	RecordMatch(outcome workflow.MatchOutcome)
	RecordTransition(transition workflow.Transition)
	RecordEscalation(outcome string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveRequest(string, string, time.Duration) {}
func (NopMetrics) RecordMatch(workflow.MatchOutcome)            {}
func (NopMetrics) RecordTransition(workflow.Transition)         {}
func (NopMetrics) RecordEscalation(string)                      {}

type AutoAssignExecutor interface {
	Execute(ctx context.Context, cmd AutoAssignCommand) (*AutoAssignResult, error)
}

type CalculateSLAExecutor interface {
	Execute(ctx context.Context, cmd CalculateSLACommand) (*CalculateSLAResult, error)
}

type CheckBreachExecutor interface {
	Execute(ctx context.Context, cmd CheckBreachCommand) (*CheckBreachResult, error)
}

type EscalateExecutor interface {
	Execute(ctx context.Context, cmd EscalateCommand) (*EscalateResult, error)
}

type SweepBreachesExecutor interface {
	Execute(ctx context.Context, cmd SweepBreachesCommand) (*SweepBreachesResult, error)
}

type CreateRuleExecutor interface {
	Execute(ctx context.Context, cmd CreateRuleCommand) (*dto.AssignmentRuleDTO, error)
}

type UpdateRuleExecutor interface {
	Execute(ctx context.Context, cmd UpdateRuleCommand) (*dto.AssignmentRuleDTO, error)
}

type SetRuleEnabledExecutor interface {
	Execute(ctx context.Context, cmd SetRuleEnabledCommand) (*dto.AssignmentRuleDTO, error)
}

type ListRulesExecutor interface {
	Execute(ctx context.Context, query ListRulesQuery) ([]*dto.AssignmentRuleDTO, error)
}

type CreatePolicyExecutor interface {
	Execute(ctx context.Context, cmd CreatePolicyCommand) (*dto.SLAPolicyDTO, error)
}

type UpdatePolicyExecutor interface {
	Execute(ctx context.Context, cmd UpdatePolicyCommand) (*dto.SLAPolicyDTO, error)
}

type SetDefaultPolicyExecutor interface {
	Execute(ctx context.Context, cmd SetDefaultPolicyCommand) (*dto.SLAPolicyDTO, error)
}

type ListPoliciesExecutor interface {
	Execute(ctx context.Context, query ListPoliciesQuery) ([]*dto.SLAPolicyDTO, error)
}

type ListWorkflowLogsExecutor interface {
	Execute(ctx context.Context, query ListWorkflowLogsQuery) (*ListWorkflowLogsResult, error)
}

type ListEscalationsExecutor interface {
	Execute(ctx context.Context, query ListEscalationsQuery) ([]*dto.CaseEscalationDTO, error)
}

type ImportWorkflowExecutor interface {
	Execute(ctx context.Context, cmd ImportWorkflowCommand) (*ImportWorkflowResult, error)
}
