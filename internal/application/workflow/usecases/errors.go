package usecases

import (
	stderrors "errors"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/errors"
)

// toAppError maps domain sentinels onto the application error taxonomy.
// The sentinel stays reachable through errors.Is.
func toAppError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, workflow.ErrUpstreamTimeout):
		return errors.NewTimeoutError(workflow.ErrUpstreamTimeout.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrNoDefaultPolicy):
		return errors.NewConfigurationError(workflow.ErrNoDefaultPolicy.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrNoEscalationTarget):
		return errors.NewConfigurationError(workflow.ErrNoEscalationTarget.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrStalePrecondition):
		return errors.NewStaleError(workflow.ErrStalePrecondition.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrTrackerConflict):
		return errors.NewStaleError(workflow.ErrTrackerConflict.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrDuplicateEscalation):
		return errors.NewConflictError(workflow.ErrDuplicateEscalation.Error()).WithCause(err)
	case stderrors.Is(err, workflow.ErrReportNotFound),
		stderrors.Is(err, workflow.ErrRuleNotFound),
		stderrors.Is(err, workflow.ErrPolicyNotFound),
		stderrors.Is(err, workflow.ErrTrackerNotFound):
		return errors.NewNotFoundError(err.Error()).WithCause(err)
	default:
		return errors.NewInternalError(fallback).WithCause(err)
	}
}
