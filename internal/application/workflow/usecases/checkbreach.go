package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type CheckBreachCommand struct {
	OrganizationID string
	ReportID       string
}

type CheckBreachResult struct {
	State      vo.SLAState
	Deadline   time.Time
	Transition workflow.Transition
	// Escalation is set when this check escalated the report.
	Escalation *EscalateResult
	// EscalationError is set when the breach was recorded but the follow-up
	// escalation failed. The tracker stays open, so the next sweep retries.
	EscalationError error
}

// CheckBreachUseCase classifies a report against its deadline and emits
// sla_warning and sla_breached at most once per deadline. Concurrent checks
// of the same report are serialized by the tracker's compare-and-set; the
// loser observes the winner's state and emits nothing.
type CheckBreachUseCase struct {
	trackerRepo     workflow.SLATrackerRepository
	snapshots       *SnapshotLoader
	escalate        EscalateExecutor
	logs            logWriter
	txMgr           db.Transactor
	clock           biztime.Clock
	upstream        upstream
	warningFraction float64
	notify          dispatcher
	metrics         Metrics
	logger          logger.Interface
}

func NewCheckBreachUseCase(
	trackerRepo workflow.SLATrackerRepository,
	logRepo workflow.WorkflowLogRepository,
	snapshots *SnapshotLoader,
	escalate EscalateExecutor,
	notifier Notifier,
	txMgr db.Transactor,
	clock biztime.Clock,
	cfg EngineConfig,
	metrics Metrics,
	logger logger.Interface,
) *CheckBreachUseCase {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &CheckBreachUseCase{
		trackerRepo:     trackerRepo,
		snapshots:       snapshots,
		escalate:        escalate,
		logs:            logWriter{repo: logRepo, clock: clock},
		txMgr:           txMgr,
		clock:           clock,
		upstream:        upstream{timeout: cfg.UpstreamTimeout},
		warningFraction: cfg.WarningFraction,
		notify:          dispatcher{notifier: notifier, timeout: cfg.UpstreamTimeout, logger: logger},
		metrics:         metrics,
		logger:          logger,
	}
}

func (uc *CheckBreachUseCase) Execute(ctx context.Context, cmd CheckBreachCommand) (*CheckBreachResult, error) {
	if err := validateReportRef(cmd.OrganizationID, cmd.ReportID); err != nil {
		return nil, err
	}

	tracker, err := fetch(ctx, uc.upstream, func(ctx context.Context) (workflow.SLATracker, error) {
		return uc.trackerRepo.Get(ctx, cmd.OrganizationID, cmd.ReportID)
	})
	if err != nil {
		return nil, toAppError(err, "failed to load sla tracker")
	}

	now := uc.clock.Now()
	classification := workflow.ClassifyBreach(tracker.WindowStart, tracker.Deadline, now, uc.warningFraction)
	next, transition := tracker.Observe(classification, now)

	if tracker.Changed(next) {
		escalates := false
		if transition == workflow.TransitionBreached {
			escalates, _ = uc.escalatesAfterBreach(ctx, next)
		}
		won, err := uc.commitTransition(ctx, tracker, next, transition, escalates, now)
		if err != nil {
			uc.logger.Errorw("failed to record sla transition",
				"report_id", cmd.ReportID,
				"organization_id", cmd.OrganizationID,
				"transition", transition,
				"error", err)
			return nil, toAppError(err, "failed to record sla transition")
		}
		if !won {
			// Another checker committed first; report its view without emitting.
			latest, err := fetch(ctx, uc.upstream, func(ctx context.Context) (workflow.SLATracker, error) {
				return uc.trackerRepo.Get(ctx, cmd.OrganizationID, cmd.ReportID)
			})
			if err != nil {
				return nil, toAppError(err, "failed to reload sla tracker")
			}
			next, transition = latest, workflow.TransitionNone
		}
	}

	result := &CheckBreachResult{
		State:      next.State,
		Deadline:   next.Deadline,
		Transition: transition,
	}

	if transition != workflow.TransitionNone {
		uc.metrics.RecordTransition(transition)
		uc.logger.Infow("sla transition recorded",
			"report_id", cmd.ReportID,
			"organization_id", cmd.OrganizationID,
			"transition", transition,
			"deadline", next.Deadline)
	}
	if transition == workflow.TransitionBreached {
		uc.notify.dispatch(workflow.NewSLABreachedEvent(next.OrganizationID, next.ReportID, next.Deadline, now))
	}

	if next.State.IsBreached() {
		uc.escalateIfPending(ctx, next, result)
	}
	return result, nil
}

// commitTransition stores next and its log entry atomically. It reports
// false when another writer updated the tracker first.
func (uc *CheckBreachUseCase) commitTransition(
	ctx context.Context,
	prev, next workflow.SLATracker,
	transition workflow.Transition,
	escalates bool,
	now time.Time,
) (bool, error) {
	err := uc.upstream.do(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := uc.trackerRepo.CompareAndSwap(ctx, prev.Version, next); err != nil {
				return err
			}

			switch transition {
			case workflow.TransitionWarning:
				fraction := workflow.ElapsedFraction(next.WindowStart, next.Deadline, now)
				return uc.logs.append(ctx, next.OrganizationID, next.ReportID,
					workflow.SLAWarningRecord(next.Deadline, now, fraction))
			case workflow.TransitionBreached:
				return uc.logs.append(ctx, next.OrganizationID, next.ReportID,
					workflow.SLABreachedRecord(next.Deadline, now, next.PolicyID, escalates))
			}
			return nil
		})
	})
	if stderrors.Is(err, workflow.ErrTrackerConflict) {
		return false, nil
	}
	return err == nil, err
}

// escalateIfPending hands a breached deadline to the coordinator until the
// tracker records its follow-up as handled. Failures leave the tracker open
// so the next sweep retries.
func (uc *CheckBreachUseCase) escalateIfPending(ctx context.Context, tracker workflow.SLATracker, result *CheckBreachResult) {
	if tracker.IsHandled() {
		return
	}
	escalates, err := uc.escalatesAfterBreach(ctx, tracker)
	if err != nil {
		result.EscalationError = err
		return
	}

	if escalates {
		deadline := tracker.Deadline
		escalation, err := uc.escalate.Execute(ctx, EscalateCommand{
			OrganizationID: tracker.OrganizationID,
			ReportID:       tracker.ReportID,
			SLABreached:    true,
			Deadline:       &deadline,
			PolicyID:       tracker.PolicyID,
		})
		switch {
		case stderrors.Is(err, workflow.ErrReportNotFound):
			uc.logger.Warnw("breached report no longer exists",
				"report_id", tracker.ReportID,
				"organization_id", tracker.OrganizationID)
		case err != nil:
			uc.logger.Warnw("breach escalation failed",
				"report_id", tracker.ReportID,
				"organization_id", tracker.OrganizationID,
				"error", err)
			result.EscalationError = err
			return
		default:
			result.Escalation = escalation
		}
	}

	markHandled(ctx, uc.trackerRepo, uc.upstream, tracker, uc.clock.Now(), uc.logger)
}

// markHandled closes the breach follow-up for the tracker's deadline. A
// conflict means another writer moved the tracker on, which is fine.
func markHandled(
	ctx context.Context,
	repo workflow.SLATrackerRepository,
	up upstream,
	tracker workflow.SLATracker,
	now time.Time,
	log logger.Interface,
) {
	marked, ok := tracker.MarkHandled(now)
	if !ok {
		return
	}
	err := up.do(ctx, func(ctx context.Context) error {
		return repo.CompareAndSwap(ctx, tracker.Version, marked)
	})
	if err != nil && !stderrors.Is(err, workflow.ErrTrackerConflict) {
		log.Warnw("failed to mark breach handled", "report_id", tracker.ReportID, "error", err)
	}
}

func (uc *CheckBreachUseCase) escalatesAfterBreach(ctx context.Context, tracker workflow.SLATracker) (bool, error) {
	snap, err := uc.snapshots.Load(ctx, tracker.OrganizationID)
	if err != nil {
		uc.logger.Warnw("failed to load policy for breach escalation",
			"organization_id", tracker.OrganizationID,
			"error", err)
		return false, err
	}
	policy := snap.PolicyByID(tracker.PolicyID)
	if policy == nil {
		policy, _ = workflow.ResolvePolicy(nil, snap.Policies)
	}
	return policy != nil && policy.EscalateAfterBreach(), nil
}
