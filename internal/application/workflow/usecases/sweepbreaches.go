package usecases

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type SweepBreachesCommand struct {
	// OrganizationID limits the sweep to one organization; empty sweeps all.
	OrganizationID string
}

type SweepBreachesResult struct {
	Checked     int
	Warnings    int
	Breaches    int
	Escalations int
	Failures    int
}

// SweepBreachesUseCase runs a breach check for every open tracker with
// bounded concurrency. A failing report is counted and does not stop the
// sweep.
type SweepBreachesUseCase struct {
	trackerRepo workflow.SLATrackerRepository
	checkBreach CheckBreachExecutor
	upstream    upstream
	concurrency int
	batchSize   int
	logger      logger.Interface
}

func NewSweepBreachesUseCase(
	trackerRepo workflow.SLATrackerRepository,
	checkBreach CheckBreachExecutor,
	cfg EngineConfig,
	logger logger.Interface,
) *SweepBreachesUseCase {
	cfg = cfg.withDefaults()
	return &SweepBreachesUseCase{
		trackerRepo: trackerRepo,
		checkBreach: checkBreach,
		upstream:    upstream{timeout: cfg.UpstreamTimeout},
		concurrency: cfg.SweepConcurrency,
		batchSize:   cfg.SweepBatchSize,
		logger:      logger,
	}
}

func (uc *SweepBreachesUseCase) Execute(ctx context.Context, cmd SweepBreachesCommand) (*SweepBreachesResult, error) {
	orgs := []string{cmd.OrganizationID}
	if cmd.OrganizationID == "" {
		var err error
		orgs, err = fetch(ctx, uc.upstream, uc.trackerRepo.ListOrganizationsWithOpen)
		if err != nil {
			uc.logger.Errorw("failed to list organizations with open deadlines", "error", err)
			return nil, toAppError(err, "failed to list open deadlines")
		}
	}

	result := &SweepBreachesResult{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, orgID := range orgs {
		trackers, err := fetch(ctx, uc.upstream, func(ctx context.Context) ([]workflow.SLATracker, error) {
			return uc.trackerRepo.ListOpen(ctx, orgID, uc.batchSize)
		})
		if err != nil {
			uc.logger.Errorw("failed to list open sla trackers", "organization_id", orgID, "error", err)
			mu.Lock()
			result.Failures++
			mu.Unlock()
			continue
		}

		for _, tracker := range trackers {
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				res, err := uc.checkBreach.Execute(gctx, CheckBreachCommand{
					OrganizationID: tracker.OrganizationID,
					ReportID:       tracker.ReportID,
				})

				mu.Lock()
				defer mu.Unlock()
				result.Checked++
				if err != nil {
					result.Failures++
					uc.logger.Warnw("breach check failed",
						"organization_id", tracker.OrganizationID,
						"report_id", tracker.ReportID,
						"error", err)
					return nil
				}
				switch res.Transition {
				case workflow.TransitionWarning:
					result.Warnings++
				case workflow.TransitionBreached:
					result.Breaches++
				}
				if res.Escalation != nil && !res.Escalation.Duplicate {
					result.Escalations++
				}
				if res.EscalationError != nil {
					result.Failures++
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	uc.logger.Infow("breach sweep completed",
		"organizations", len(orgs),
		"checked", result.Checked,
		"warnings", result.Warnings,
		"breaches", result.Breaches,
		"escalations", result.Escalations,
		"failures", result.Failures)
	return result, nil
}
