package usecases

import (
	"context"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/id"
)

// logWriter stamps log records with an ID and the engine clock before
// appending them.
type logWriter struct {
	repo  workflow.WorkflowLogRepository
	clock biztime.Clock
}

func (w logWriter) append(ctx context.Context, organizationID, reportID string, records ...workflow.LogRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := w.clock.Now()
	entries := make([]*workflow.WorkflowLogEntry, 0, len(records))
	for _, rec := range records {
		entry, err := workflow.NewWorkflowLogEntry(id.New(), organizationID, reportID, rec.Action, rec.Details, now)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	return w.repo.Append(ctx, entries...)
}
