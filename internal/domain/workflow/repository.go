package workflow

import (
	"context"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

// Every method is scoped by organization; implementations must never return
// rows belonging to another organization.

type AssignmentRuleRepository interface {
	// Create persists a new rule and assigns its insertion sequence.
	Create(ctx context.Context, rule *AssignmentRule) error
	Update(ctx context.Context, rule *AssignmentRule) error
	GetByID(ctx context.Context, organizationID, ruleID string) (*AssignmentRule, error)
	// List returns rules ordered by priority then sequence.
	List(ctx context.Context, organizationID string, filter RuleFilter) ([]*AssignmentRule, error)
}

type RuleFilter struct {
	EnabledOnly bool
}

type SLAPolicyRepository interface {
	Create(ctx context.Context, policy *SLAPolicy) error
	Update(ctx context.Context, policy *SLAPolicy) error
	GetByID(ctx context.Context, organizationID, policyID string) (*SLAPolicy, error)
	List(ctx context.Context, organizationID string) ([]*SLAPolicy, error)
	// ClearDefault unsets is_default on every policy of the organization.
	ClearDefault(ctx context.Context, organizationID string) error
}

type EscalationRepository interface {
	// Create returns ErrDuplicateEscalation when the dedupe key exists.
	Create(ctx context.Context, escalation *CaseEscalation) error
	GetByDedupeKey(ctx context.Context, organizationID, dedupeKey string) (*CaseEscalation, error)
	ListByReport(ctx context.Context, organizationID, reportID string) ([]*CaseEscalation, error)
}

type WorkflowLogRepository interface {
	Append(ctx context.Context, entries ...*WorkflowLogEntry) error
	ListByReport(ctx context.Context, organizationID, reportID string, filter LogFilter) ([]*WorkflowLogEntry, int64, error)
}

type LogFilter struct {
	Action   *vo.LogAction
	Page     int
	PageSize int
}

type SLATrackerRepository interface {
	Get(ctx context.Context, organizationID, reportID string) (SLATracker, error)
	// Create returns ErrTrackerConflict if a tracker already exists.
	Create(ctx context.Context, tracker SLATracker) error
	// CompareAndSwap stores next only if the stored version equals prevVersion,
	// otherwise it returns ErrTrackerConflict.
	CompareAndSwap(ctx context.Context, prevVersion int, next SLATracker) error
	// ListOpen returns trackers the sweep still has work for, earliest deadline
	// first: breach not emitted, or emitted with its follow-up not handled.
	ListOpen(ctx context.Context, organizationID string, limit int) ([]SLATracker, error)
	ListOrganizationsWithOpen(ctx context.Context) ([]string, error)
}

// ReportRepository is the report-management collaborator. The engine reads
// match inputs and issues ownership and deadline updates through it.
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	// GetByID returns ErrReportNotFound for missing or deleted reports.
	GetByID(ctx context.Context, organizationID, reportID string) (*Report, error)
	// UpdateOwner sets the owner only if the current owner equals expected
	// (nil meaning unassigned); otherwise it returns ErrStalePrecondition.
	UpdateOwner(ctx context.Context, organizationID, reportID string, expected *string, owner string, now time.Time) error
	SetSLADeadline(ctx context.Context, organizationID, reportID string, deadline time.Time, now time.Time) error
}
