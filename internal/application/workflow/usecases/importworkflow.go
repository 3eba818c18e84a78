package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/id"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type ImportPolicy struct {
	Policy    PolicySpec
	IsDefault bool
}

// ImportReport seeds a report into the report store, mainly for staging
// environments and demos.
type ImportReport struct {
	ID          string
	Title       string
	Description string
	Category    string
	Department  string
	Urgency     string
	CreatedAt   *time.Time
}

type ImportWorkflowCommand struct {
	OrganizationID string
	Policies       []ImportPolicy
	Rules          []RuleSpec
	Reports        []ImportReport
}

type ImportWorkflowResult struct {
	Policies int
	Rules    int
	Reports  int
}

// ImportWorkflowUseCase loads an organization's policies, rules and
// optional reports in one transaction; any invalid item aborts the import.
type ImportWorkflowUseCase struct {
	createPolicy CreatePolicyExecutor
	createRule   CreateRuleExecutor
	reportRepo   workflow.ReportRepository
	txMgr        db.Transactor
	clock        biztime.Clock
	logger       logger.Interface
}

func NewImportWorkflowUseCase(
	createPolicy CreatePolicyExecutor,
	createRule CreateRuleExecutor,
	reportRepo workflow.ReportRepository,
	txMgr db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *ImportWorkflowUseCase {
	return &ImportWorkflowUseCase{
		createPolicy: createPolicy,
		createRule:   createRule,
		reportRepo:   reportRepo,
		txMgr:        txMgr,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *ImportWorkflowUseCase) Execute(ctx context.Context, cmd ImportWorkflowCommand) (*ImportWorkflowResult, error) {
	if strings.TrimSpace(cmd.OrganizationID) == "" {
		return nil, errors.NewValidationError("organization ID is required")
	}

	defaults := 0
	for _, p := range cmd.Policies {
		if p.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return nil, errors.NewValidationError("at most one policy may be marked default")
	}

	result := &ImportWorkflowResult{}
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		for i, p := range cmd.Policies {
			if _, err := uc.createPolicy.Execute(ctx, CreatePolicyCommand{
				OrganizationID: cmd.OrganizationID,
				Policy:         p.Policy,
				IsDefault:      p.IsDefault,
			}); err != nil {
				return fmt.Errorf("policy %d (%s): %w", i, p.Policy.Name, err)
			}
			result.Policies++
		}

		for i, r := range cmd.Rules {
			if _, err := uc.createRule.Execute(ctx, CreateRuleCommand{
				OrganizationID: cmd.OrganizationID,
				Rule:           r,
			}); err != nil {
				return fmt.Errorf("rule %d (%s): %w", i, r.Name, err)
			}
			result.Rules++
		}

		for i, r := range cmd.Reports {
			report, err := uc.buildReport(cmd.OrganizationID, r)
			if err != nil {
				return fmt.Errorf("report %d: %w", i, err)
			}
			if err := uc.reportRepo.Create(ctx, report); err != nil {
				return fmt.Errorf("report %d (%s): %w", i, report.ID(), err)
			}
			result.Reports++
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("workflow import failed", "organization_id", cmd.OrganizationID, "error", err)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, toAppError(err, "failed to import workflow")
	}

	uc.logger.Infow("workflow imported",
		"organization_id", cmd.OrganizationID,
		"policies", result.Policies,
		"rules", result.Rules,
		"reports", result.Reports)
	return result, nil
}

func (uc *ImportWorkflowUseCase) buildReport(organizationID string, r ImportReport) (*workflow.Report, error) {
	urgency, err := vo.NewUrgency(r.Urgency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	reportID := strings.TrimSpace(r.ID)
	if reportID == "" {
		reportID = id.New()
	}
	createdAt := uc.clock.Now()
	if r.CreatedAt != nil {
		createdAt = r.CreatedAt.UTC()
	}
	report, err := workflow.NewReport(reportID, organizationID, r.Title, r.Description, r.Category, r.Department, urgency, createdAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return report, nil
}
