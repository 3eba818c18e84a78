package scheduler

import (
	"context"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// BreachSweepJob adapts the sweep use case to a BatchJob. The returned count
// is the number of trackers checked.
type BreachSweepJob struct {
	sweep  usecases.SweepBreachesExecutor
	logger logger.Interface
}

func NewBreachSweepJob(sweep usecases.SweepBreachesExecutor, logger logger.Interface) *BreachSweepJob {
	return &BreachSweepJob{sweep: sweep, logger: logger}
}

func (j *BreachSweepJob) Execute(ctx context.Context) (int, error) {
	res, err := j.sweep.Execute(ctx, usecases.SweepBreachesCommand{})
	if err != nil {
		return 0, err
	}

	if res.Breaches > 0 || res.Failures > 0 {
		j.logger.Infow("sla breach sweep finished",
			"checked", res.Checked,
			"warnings", res.Warnings,
			"breaches", res.Breaches,
			"escalations", res.Escalations,
			"failures", res.Failures,
		)
	}
	return res.Checked, nil
}
