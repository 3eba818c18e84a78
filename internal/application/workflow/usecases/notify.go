package usecases

import (
	"context"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/goroutine"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// dispatcher hands events to the notifier without blocking the caller.
// Delivery failures are logged and never affect the workflow outcome.
type dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   logger.Interface
}

func (d dispatcher) dispatch(event workflow.WorkflowEvent) {
	if d.notifier == nil {
		return
	}
	goroutine.SafeGo(d.logger, "workflow-notify", func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, event); err != nil {
			d.logger.Warnw("failed to dispatch workflow notification",
				"event_type", event.Type,
				"report_id", event.ReportID,
				"organization_id", event.OrganizationID,
				"error", err)
		}
	})
}
