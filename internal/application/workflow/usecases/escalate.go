package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/id"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

const (
	defaultBreachReason = "SLA deadline breached"
	defaultManualReason = "manual escalation"
)

type EscalateCommand struct {
	OrganizationID string
	ReportID       string
	// EscalateTo overrides the policy's escalation user.
	EscalateTo  *string
	Reason      string
	SLABreached bool
	// Deadline is the deadline whose breach triggered the escalation; nil
	// for manual escalations. A breach escalation without one uses the
	// report's breached tracker deadline.
	Deadline *time.Time
	// PolicyID resolves the escalation user; empty uses the default policy.
	PolicyID string
}

type EscalateResult struct {
	// Escalation is the recorded escalation. For a duplicate it is the
	// earlier record with the same dedupe key, if one is stored.
	Escalation *workflow.CaseEscalation
	// Duplicate is set when the escalation had already been recorded or the
	// report is already owned by the target.
	Duplicate   bool
	EscalatedTo string
}

// EscalateUseCase records an escalation and moves report ownership. At
// most one escalation is recorded per (report, target, trigger): the guard
// claims the key first and the unique dedupe key backs it in storage.
type EscalateUseCase struct {
	reportRepo     workflow.ReportRepository
	escalationRepo workflow.EscalationRepository
	trackerRepo    workflow.SLATrackerRepository
	snapshots      *SnapshotLoader
	guard          EscalationGuard
	logs           logWriter
	txMgr          db.Transactor
	clock          biztime.Clock
	upstream       upstream
	dedupeWindow   time.Duration
	notify         dispatcher
	metrics        Metrics
	logger         logger.Interface
}

func NewEscalateUseCase(
	reportRepo workflow.ReportRepository,
	escalationRepo workflow.EscalationRepository,
	trackerRepo workflow.SLATrackerRepository,
	logRepo workflow.WorkflowLogRepository,
	snapshots *SnapshotLoader,
	guard EscalationGuard,
	notifier Notifier,
	txMgr db.Transactor,
	clock biztime.Clock,
	cfg EngineConfig,
	metrics Metrics,
	logger logger.Interface,
) *EscalateUseCase {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &EscalateUseCase{
		reportRepo:     reportRepo,
		escalationRepo: escalationRepo,
		trackerRepo:    trackerRepo,
		snapshots:      snapshots,
		guard:          guard,
		logs:           logWriter{repo: logRepo, clock: clock},
		txMgr:          txMgr,
		clock:          clock,
		upstream:       upstream{timeout: cfg.UpstreamTimeout},
		dedupeWindow:   cfg.EscalationDedupeWindow,
		notify:         dispatcher{notifier: notifier, timeout: cfg.UpstreamTimeout, logger: logger},
		metrics:        metrics,
		logger:         logger,
	}
}

func (uc *EscalateUseCase) Execute(ctx context.Context, cmd EscalateCommand) (*EscalateResult, error) {
	uc.logger.Infow("executing escalate use case",
		"report_id", cmd.ReportID,
		"organization_id", cmd.OrganizationID,
		"sla_breached", cmd.SLABreached)

	if err := validateReportRef(cmd.OrganizationID, cmd.ReportID); err != nil {
		return nil, err
	}

	report, err := fetch(ctx, uc.upstream, func(ctx context.Context) (*workflow.Report, error) {
		return uc.reportRepo.GetByID(ctx, cmd.OrganizationID, cmd.ReportID)
	})
	if err != nil {
		if stderrors.Is(err, workflow.ErrReportNotFound) {
			err = stderrors.Join(workflow.ErrStalePrecondition, err)
		}
		uc.metrics.RecordEscalation("failed")
		return nil, toAppError(err, "failed to load report")
	}
	expectedOwner := report.AssignedTo()

	var breached *workflow.SLATracker
	if cmd.SLABreached && cmd.Deadline == nil {
		if breached, err = uc.breachedTracker(ctx, cmd); err != nil {
			uc.metrics.RecordEscalation("failed")
			return nil, toAppError(err, "failed to load sla tracker")
		}
		if breached != nil {
			deadline := breached.Deadline
			cmd.Deadline = &deadline
			if cmd.PolicyID == "" {
				cmd.PolicyID = breached.PolicyID
			}
		}
	}

	target, err := uc.resolveTarget(ctx, cmd)
	if err != nil {
		uc.metrics.RecordEscalation("failed")
		uc.logger.Warnw("escalation target unavailable",
			"report_id", cmd.ReportID,
			"organization_id", cmd.OrganizationID,
			"error", err)
		return nil, toAppError(err, "failed to resolve escalation target")
	}

	now := uc.clock.Now()
	dedupeKey := workflow.EscalationDedupeKey(report.ID(), target, cmd.Deadline, now, uc.dedupeWindow)
	guardKey := cmd.OrganizationID + ":" + dedupeKey

	if report.IsOwnedBy(&target) {
		uc.metrics.RecordEscalation("duplicate")
		uc.logger.Infow("report already owned by escalation target",
			"report_id", report.ID(),
			"escalated_to", target)
		uc.settleBreach(ctx, breached)
		return uc.duplicate(ctx, cmd.OrganizationID, dedupeKey, target), nil
	}

	acquired, err := fetch(ctx, uc.upstream, func(ctx context.Context) (bool, error) {
		return uc.guard.Acquire(ctx, guardKey, uc.dedupeWindow)
	})
	if err != nil {
		uc.metrics.RecordEscalation("failed")
		uc.logger.Errorw("failed to acquire escalation guard", "dedupe_key", dedupeKey, "error", err)
		return nil, toAppError(err, "failed to acquire escalation guard")
	}
	if !acquired {
		uc.metrics.RecordEscalation("duplicate")
		uc.logger.Infow("escalation already in progress or recorded",
			"report_id", report.ID(),
			"escalated_to", target,
			"dedupe_key", dedupeKey)
		return uc.duplicate(ctx, cmd.OrganizationID, dedupeKey, target), nil
	}

	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		reason = defaultManualReason
		if cmd.SLABreached {
			reason = defaultBreachReason
		}
	}

	escalation, err := workflow.NewCaseEscalation(id.New(), cmd.OrganizationID, report.ID(),
		expectedOwner, target, reason, cmd.SLABreached, dedupeKey, now)
	if err != nil {
		uc.release(guardKey)
		uc.metrics.RecordEscalation("failed")
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.upstream.do(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
			return uc.apply(ctx, escalation, expectedOwner, cmd)
		})
	})
	if err != nil {
		uc.release(guardKey)
		if stderrors.Is(err, workflow.ErrDuplicateEscalation) {
			uc.metrics.RecordEscalation("duplicate")
			uc.logger.Infow("escalation already recorded", "report_id", report.ID(), "dedupe_key", dedupeKey)
			uc.settleBreach(ctx, breached)
			return uc.duplicate(ctx, cmd.OrganizationID, dedupeKey, target), nil
		}
		uc.metrics.RecordEscalation("failed")
		uc.logger.Warnw("escalation aborted",
			"report_id", report.ID(),
			"organization_id", cmd.OrganizationID,
			"escalated_to", target,
			"error", err)
		return nil, toAppError(err, "failed to record escalation")
	}

	uc.metrics.RecordEscalation("escalated")
	uc.logger.Infow("report escalated",
		"report_id", report.ID(),
		"organization_id", cmd.OrganizationID,
		"escalation_id", escalation.ID(),
		"escalated_to", target,
		"sla_breached", cmd.SLABreached)

	uc.notify.dispatch(workflow.NewEscalatedEvent(escalation, cmd.Deadline))
	uc.settleBreach(ctx, breached)

	return &EscalateResult{Escalation: escalation, EscalatedTo: target}, nil
}

// apply runs inside the transaction. The report is re-read so a deletion or
// reassignment since the snapshot aborts the escalation, and a report that
// already belongs to the target is a duplicate.
func (uc *EscalateUseCase) apply(
	ctx context.Context,
	escalation *workflow.CaseEscalation,
	expectedOwner *string,
	cmd EscalateCommand,
) error {
	current, err := uc.reportRepo.GetByID(ctx, escalation.OrganizationID(), escalation.ReportID())
	if err != nil {
		if stderrors.Is(err, workflow.ErrReportNotFound) {
			return stderrors.Join(workflow.ErrStalePrecondition, err)
		}
		return err
	}
	target := escalation.EscalatedTo()
	if current.IsOwnedBy(&target) {
		return workflow.ErrDuplicateEscalation
	}
	if !current.IsOwnedBy(expectedOwner) {
		return workflow.ErrStalePrecondition
	}

	if err := uc.escalationRepo.Create(ctx, escalation); err != nil {
		return err
	}
	if err := uc.reportRepo.UpdateOwner(ctx, escalation.OrganizationID(), escalation.ReportID(),
		expectedOwner, escalation.EscalatedTo(), escalation.CreatedAt()); err != nil {
		return err
	}

	records := []workflow.LogRecord{workflow.EscalatedRecord(escalation, cmd.Deadline)}
	if !cmd.SLABreached {
		records = append(records, workflow.ManuallyReassignedRecord(escalation))
	}
	return uc.logs.append(ctx, escalation.OrganizationID(), escalation.ReportID(), records...)
}

func (uc *EscalateUseCase) resolveTarget(ctx context.Context, cmd EscalateCommand) (string, error) {
	if cmd.EscalateTo != nil {
		if target := strings.TrimSpace(*cmd.EscalateTo); target != "" {
			return target, nil
		}
	}

	snap, err := uc.snapshots.Load(ctx, cmd.OrganizationID)
	if err != nil {
		return "", err
	}

	var policy *workflow.SLAPolicy
	if cmd.PolicyID != "" {
		policy = snap.PolicyByID(cmd.PolicyID)
	}
	if policy == nil {
		policy, _ = workflow.ResolvePolicy(nil, snap.Policies)
	}
	if policy == nil || policy.EscalateToUserID() == nil {
		return "", workflow.ErrNoEscalationTarget
	}
	return *policy.EscalateToUserID(), nil
}

// breachedTracker returns the report's tracker when its breach has been
// emitted, nil otherwise.
func (uc *EscalateUseCase) breachedTracker(ctx context.Context, cmd EscalateCommand) (*workflow.SLATracker, error) {
	tracker, err := fetch(ctx, uc.upstream, func(ctx context.Context) (workflow.SLATracker, error) {
		return uc.trackerRepo.Get(ctx, cmd.OrganizationID, cmd.ReportID)
	})
	if err != nil {
		if stderrors.Is(err, workflow.ErrTrackerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !tracker.BreachEmitted {
		return nil, nil
	}
	return &tracker, nil
}

// settleBreach marks the breached deadline handled so the sweep does not
// escalate it a second time.
func (uc *EscalateUseCase) settleBreach(ctx context.Context, tracker *workflow.SLATracker) {
	if tracker == nil {
		return
	}
	markHandled(ctx, uc.trackerRepo, uc.upstream, *tracker, uc.clock.Now(), uc.logger)
}

// duplicate builds the result for an escalation that was already recorded,
// attaching the stored record when one carries the same dedupe key.
func (uc *EscalateUseCase) duplicate(ctx context.Context, organizationID, dedupeKey, target string) *EscalateResult {
	res := &EscalateResult{Duplicate: true, EscalatedTo: target}
	existing, err := fetch(ctx, uc.upstream, func(ctx context.Context) (*workflow.CaseEscalation, error) {
		return uc.escalationRepo.GetByDedupeKey(ctx, organizationID, dedupeKey)
	})
	if err != nil {
		uc.logger.Warnw("failed to load recorded escalation", "dedupe_key", dedupeKey, "error", err)
		return res
	}
	res.Escalation = existing
	return res
}

func (uc *EscalateUseCase) release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.upstream.timeout)
	defer cancel()
	if err := uc.guard.Release(ctx, key); err != nil {
		uc.logger.Warnw("failed to release escalation guard", "key", key, "error", err)
	}
}
