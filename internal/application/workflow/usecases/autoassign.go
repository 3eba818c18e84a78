package usecases

import (
	"context"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type AutoAssignCommand struct {
	OrganizationID string
	ReportID       string
}

type AutoAssignResult struct {
	Outcome workflow.MatchOutcome
	// AssignedTo is nil unless a rule with a target matched.
	AssignedTo *string
	RuleName   string
	SLA        *CalculateSLAResult
	// SLAError is set when assignment succeeded but no deadline could be
	// computed. The assignment is not rolled back.
	SLAError error
}

type AutoAssignUseCase struct {
	reportRepo workflow.ReportRepository
	snapshots  *SnapshotLoader
	sla        *CalculateSLAUseCase
	logs       logWriter
	txMgr      db.Transactor
	clock      biztime.Clock
	upstream   upstream
	metrics    Metrics
	logger     logger.Interface
}

func NewAutoAssignUseCase(
	reportRepo workflow.ReportRepository,
	logRepo workflow.WorkflowLogRepository,
	snapshots *SnapshotLoader,
	sla *CalculateSLAUseCase,
	txMgr db.Transactor,
	clock biztime.Clock,
	cfg EngineConfig,
	metrics Metrics,
	logger logger.Interface,
) *AutoAssignUseCase {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &AutoAssignUseCase{
		reportRepo: reportRepo,
		snapshots:  snapshots,
		sla:        sla,
		logs:       logWriter{repo: logRepo, clock: clock},
		txMgr:      txMgr,
		clock:      clock,
		upstream:   upstream{timeout: cfg.UpstreamTimeout},
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *AutoAssignUseCase) Execute(ctx context.Context, cmd AutoAssignCommand) (*AutoAssignResult, error) {
	uc.logger.Infow("executing auto assign use case",
		"report_id", cmd.ReportID,
		"organization_id", cmd.OrganizationID)

	if err := validateReportRef(cmd.OrganizationID, cmd.ReportID); err != nil {
		return nil, err
	}

	report, err := fetch(ctx, uc.upstream, func(ctx context.Context) (*workflow.Report, error) {
		return uc.reportRepo.GetByID(ctx, cmd.OrganizationID, cmd.ReportID)
	})
	if err != nil {
		uc.logger.Warnw("failed to load report for auto assign", "report_id", cmd.ReportID, "error", err)
		return nil, toAppError(err, "failed to load report")
	}

	snap, err := uc.snapshots.Load(ctx, cmd.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to load workflow snapshot", "organization_id", cmd.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to load assignment rules")
	}

	match := workflow.Match(report, snap.Rules)
	uc.metrics.RecordMatch(match.Outcome)

	switch match.Outcome {
	case workflow.MatchOutcomeNoMatch:
		uc.logger.Infow("no assignment rule matched",
			"report_id", report.ID(),
			"organization_id", report.OrganizationID(),
			"rules_evaluated", len(snap.Rules))
		return &AutoAssignResult{Outcome: match.Outcome}, nil

	case workflow.MatchOutcomeMatchedWithoutTarget:
		uc.logger.Warnw("assignment rule matched but has no target",
			"report_id", report.ID(),
			"organization_id", report.OrganizationID(),
			"rule_id", match.Rule.ID(),
			"rule_name", match.Rule.Name())

		record, _ := match.LogRecord()
		err := uc.upstream.do(ctx, func(ctx context.Context) error {
			return uc.logs.append(ctx, report.OrganizationID(), report.ID(), record)
		})
		if err != nil {
			return nil, toAppError(err, "failed to write workflow log")
		}
		return &AutoAssignResult{Outcome: match.Outcome, RuleName: match.Rule.Name()}, nil
	}

	matchRecord, _ := match.LogRecord()
	assignee := match.Assignee
	err = uc.upstream.do(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := uc.reportRepo.UpdateOwner(ctx, report.OrganizationID(), report.ID(),
				report.AssignedTo(), assignee, uc.clock.Now()); err != nil {
				return err
			}
			return uc.logs.append(ctx, report.OrganizationID(), report.ID(),
				matchRecord,
				workflow.AutoAssignedRecord(match.Rule, assignee))
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to persist assignment",
			"report_id", report.ID(),
			"rule_id", match.Rule.ID(),
			"error", err)
		return nil, toAppError(err, "failed to persist assignment")
	}

	uc.logger.Infow("report auto assigned",
		"report_id", report.ID(),
		"organization_id", report.OrganizationID(),
		"rule_id", match.Rule.ID(),
		"priority", match.Rule.Priority(),
		"assigned_to", assignee)

	result := &AutoAssignResult{
		Outcome:    match.Outcome,
		AssignedTo: &assignee,
		RuleName:   match.Rule.Name(),
	}

	sla, err := uc.sla.calculate(ctx, report, snap, "")
	if err != nil {
		result.SLAError = err
		return result, nil
	}
	result.SLA = sla
	return result, nil
}
