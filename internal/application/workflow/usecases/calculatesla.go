package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type CalculateSLACommand struct {
	OrganizationID string
	ReportID       string
	// PolicyID selects an explicit policy; empty falls back to the default.
	PolicyID string
}

type CalculateSLAResult struct {
	PolicyID  string
	Urgency   vo.Urgency
	Hours     int
	Reference time.Time
	Deadline  time.Time
}

type CalculateSLAUseCase struct {
	reportRepo  workflow.ReportRepository
	trackerRepo workflow.SLATrackerRepository
	snapshots   *SnapshotLoader
	logs        logWriter
	txMgr       db.Transactor
	clock       biztime.Clock
	upstream    upstream
	logger      logger.Interface
}

func NewCalculateSLAUseCase(
	reportRepo workflow.ReportRepository,
	trackerRepo workflow.SLATrackerRepository,
	logRepo workflow.WorkflowLogRepository,
	snapshots *SnapshotLoader,
	txMgr db.Transactor,
	clock biztime.Clock,
	cfg EngineConfig,
	logger logger.Interface,
) *CalculateSLAUseCase {
	cfg = cfg.withDefaults()
	return &CalculateSLAUseCase{
		reportRepo:  reportRepo,
		trackerRepo: trackerRepo,
		snapshots:   snapshots,
		logs:        logWriter{repo: logRepo, clock: clock},
		txMgr:       txMgr,
		clock:       clock,
		upstream:    upstream{timeout: cfg.UpstreamTimeout},
		logger:      logger,
	}
}

func (uc *CalculateSLAUseCase) Execute(ctx context.Context, cmd CalculateSLACommand) (*CalculateSLAResult, error) {
	if err := validateReportRef(cmd.OrganizationID, cmd.ReportID); err != nil {
		return nil, err
	}

	report, err := fetch(ctx, uc.upstream, func(ctx context.Context) (*workflow.Report, error) {
		return uc.reportRepo.GetByID(ctx, cmd.OrganizationID, cmd.ReportID)
	})
	if err != nil {
		uc.logger.Warnw("failed to load report for sla calculation",
			"report_id", cmd.ReportID,
			"organization_id", cmd.OrganizationID,
			"error", err)
		return nil, toAppError(err, "failed to load report")
	}

	snap, err := uc.snapshots.Load(ctx, cmd.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to load workflow snapshot", "organization_id", cmd.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to load sla policies")
	}

	return uc.calculate(ctx, report, snap, strings.TrimSpace(cmd.PolicyID))
}

// calculate computes and stores the deadline for report against snap. It is
// shared with auto-assignment so both use the same snapshot.
func (uc *CalculateSLAUseCase) calculate(
	ctx context.Context,
	report *workflow.Report,
	snap *Snapshot,
	policyID string,
) (*CalculateSLAResult, error) {
	var explicit *workflow.SLAPolicy
	if policyID != "" {
		explicit = snap.PolicyByID(policyID)
		if explicit == nil {
			return nil, errors.NewNotFoundError(workflow.ErrPolicyNotFound.Error(), policyID).WithCause(workflow.ErrPolicyNotFound)
		}
	}

	policy, err := workflow.ResolvePolicy(explicit, snap.Policies)
	if err != nil {
		uc.logger.Warnw("sla policy resolution failed",
			"organization_id", report.OrganizationID(),
			"report_id", report.ID(),
			"error", err)
		return nil, toAppError(err, "failed to resolve sla policy")
	}

	reference := report.CreatedAt()
	deadline, hours, err := workflow.ComputeDeadline(report.Urgency(), policy, reference)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := uc.clock.Now()
	err = uc.upstream.do(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := uc.reportRepo.SetSLADeadline(ctx, report.OrganizationID(), report.ID(), deadline, now); err != nil {
				return err
			}
			if err := uc.storeTracker(ctx, report, policy.ID(), reference, deadline, now); err != nil {
				return err
			}
			return uc.logs.append(ctx, report.OrganizationID(), report.ID(),
				workflow.SLACalculatedRecord(policy, report.Urgency(), hours, reference, deadline))
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to store sla deadline",
			"report_id", report.ID(),
			"organization_id", report.OrganizationID(),
			"error", err)
		return nil, toAppError(err, "failed to store sla deadline")
	}

	uc.logger.Infow("sla deadline calculated",
		"report_id", report.ID(),
		"organization_id", report.OrganizationID(),
		"policy_id", policy.ID(),
		"urgency", report.Urgency(),
		"hours", hours,
		"deadline", deadline)

	return &CalculateSLAResult{
		PolicyID:  policy.ID(),
		Urgency:   report.Urgency(),
		Hours:     hours,
		Reference: reference,
		Deadline:  deadline,
	}, nil
}

// storeTracker opens a tracker for a new deadline. Recomputing the same
// deadline under the same policy keeps the existing tracker so transitions
// already emitted are not repeated.
func (uc *CalculateSLAUseCase) storeTracker(
	ctx context.Context,
	report *workflow.Report,
	policyID string,
	windowStart, deadline, now time.Time,
) error {
	existing, err := uc.trackerRepo.Get(ctx, report.OrganizationID(), report.ID())
	if stderrors.Is(err, workflow.ErrTrackerNotFound) {
		return uc.trackerRepo.Create(ctx,
			workflow.NewSLATracker(report.OrganizationID(), report.ID(), policyID, windowStart, deadline, now))
	}
	if err != nil {
		return err
	}

	if existing.PolicyID == policyID && existing.Deadline.Equal(deadline) {
		return nil
	}
	return uc.trackerRepo.CompareAndSwap(ctx, existing.Version, existing.Recalculate(policyID, windowStart, deadline, now))
}

func validateReportRef(organizationID, reportID string) error {
	if strings.TrimSpace(organizationID) == "" {
		return errors.NewValidationError("organization ID is required")
	}
	if strings.TrimSpace(reportID) == "" {
		return errors.NewValidationError("report ID is required")
	}
	return nil
}
