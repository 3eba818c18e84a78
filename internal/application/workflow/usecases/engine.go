package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// Engine is the single request/response boundary of the workflow engine.
// Handle always returns a response; failures and panics are reported through
// Success=false.
type Engine struct {
	autoAssign   AutoAssignExecutor
	calculateSLA CalculateSLAExecutor
	escalate     EscalateExecutor
	checkBreach  CheckBreachExecutor
	metrics      Metrics
	logger       logger.Interface
}

func NewEngine(
	autoAssign AutoAssignExecutor,
	calculateSLA CalculateSLAExecutor,
	escalate EscalateExecutor,
	checkBreach CheckBreachExecutor,
	metrics Metrics,
	logger logger.Interface,
) *Engine {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Engine{
		autoAssign:   autoAssign,
		calculateSLA: calculateSLA,
		escalate:     escalate,
		checkBreach:  checkBreach,
		metrics:      metrics,
		logger:       logger,
	}
}

func (e *Engine) Handle(ctx context.Context, req dto.WorkflowEngineRequest) (resp dto.WorkflowEngineResponse) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorw("workflow engine panicked",
				"action", req.Action,
				"report_id", req.ReportID,
				"panic", fmt.Sprintf("%v", r))
			resp = dto.WorkflowEngineResponse{Success: false, Error: "internal error"}
		}
		outcome := "success"
		if !resp.Success {
			outcome = "error"
		}
		e.metrics.ObserveRequest(req.Action, outcome, time.Since(start))
	}()

	req.ReportID = strings.TrimSpace(req.ReportID)
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	if req.ReportID == "" {
		return failure(errors.NewValidationError("reportId is required"))
	}
	if req.OrganizationID == "" {
		return failure(errors.NewValidationError("organizationId is required"))
	}

	switch req.Action {
	case dto.ActionAutoAssign:
		return e.handleAutoAssign(ctx, req)
	case dto.ActionCalculateSLA:
		return e.handleCalculateSLA(ctx, req)
	case dto.ActionEscalate:
		return e.handleEscalate(ctx, req)
	case dto.ActionCheckBreach:
		return e.handleCheckBreach(ctx, req)
	default:
		return failure(errors.NewValidationError(fmt.Sprintf("unknown action: %q", req.Action)))
	}
}

func (e *Engine) handleAutoAssign(ctx context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse {
	res, err := e.autoAssign.Execute(ctx, AutoAssignCommand{
		OrganizationID: req.OrganizationID,
		ReportID:       req.ReportID,
	})
	if err != nil {
		return failure(err)
	}

	resp := dto.WorkflowEngineResponse{
		Success:    true,
		AssignedTo: dto.AssignedTo(res.AssignedTo),
		RuleName:   res.RuleName,
	}
	switch res.Outcome {
	case workflow.MatchOutcomeNoMatch:
		resp.Message = workflow.ErrNoMatch.Error() + "; report remains unassigned"
		return resp
	case workflow.MatchOutcomeMatchedWithoutTarget:
		resp.Success = false
		resp.Error = fmt.Sprintf("assignment rule %q matched but has no user or team target", res.RuleName)
		return resp
	}

	if res.SLAError != nil {
		resp.Success = false
		resp.Error = errorMessage(res.SLAError)
		resp.Retryable = isRetryable(res.SLAError)
		return resp
	}
	if res.SLA != nil {
		applySLA(&resp, res.SLA)
	}
	return resp
}

func (e *Engine) handleCalculateSLA(ctx context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse {
	res, err := e.calculateSLA.Execute(ctx, CalculateSLACommand{
		OrganizationID: req.OrganizationID,
		ReportID:       req.ReportID,
	})
	if err != nil {
		return failure(err)
	}
	resp := dto.WorkflowEngineResponse{Success: true}
	applySLA(&resp, res)
	return resp
}

func (e *Engine) handleEscalate(ctx context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse {
	cmd := EscalateCommand{
		OrganizationID: req.OrganizationID,
		ReportID:       req.ReportID,
		EscalateTo:     req.EscalateTo,
	}
	if req.Reason != nil {
		cmd.Reason = *req.Reason
	}
	if req.SLABreached != nil {
		cmd.SLABreached = *req.SLABreached
	}

	res, err := e.escalate.Execute(ctx, cmd)
	if err != nil {
		if stderrors.Is(err, workflow.ErrDuplicateEscalation) {
			return dto.WorkflowEngineResponse{Success: true, Message: "report already escalated"}
		}
		return failure(err)
	}

	if res.Duplicate {
		return dto.WorkflowEngineResponse{
			Success: true,
			Message: fmt.Sprintf("report already escalated to %s", res.EscalatedTo),
		}
	}
	return dto.WorkflowEngineResponse{
		Success:    true,
		AssignedTo: dto.AssignedTo(&res.EscalatedTo),
		Message:    fmt.Sprintf("report escalated to %s", res.EscalatedTo),
	}
}

func (e *Engine) handleCheckBreach(ctx context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse {
	res, err := e.checkBreach.Execute(ctx, CheckBreachCommand{
		OrganizationID: req.OrganizationID,
		ReportID:       req.ReportID,
	})
	if err != nil {
		return failure(err)
	}

	resp := dto.WorkflowEngineResponse{
		Success:     true,
		SLADeadline: biztime.FormatRFC3339(res.Deadline),
		SLAState:    res.State.String(),
	}
	switch {
	case res.EscalationError != nil:
		resp.Success = false
		resp.Error = errorMessage(res.EscalationError)
		resp.Retryable = isRetryable(res.EscalationError)
	case res.Escalation != nil && !res.Escalation.Duplicate:
		resp.AssignedTo = dto.AssignedTo(&res.Escalation.EscalatedTo)
		resp.Message = fmt.Sprintf("sla breached; report escalated to %s", res.Escalation.EscalatedTo)
	case res.Transition != workflow.TransitionNone:
		resp.Message = fmt.Sprintf("sla %s recorded", res.Transition)
	}
	return resp
}

func applySLA(resp *dto.WorkflowEngineResponse, res *CalculateSLAResult) {
	hours := res.Hours
	resp.Hours = &hours
	resp.SLADeadline = biztime.FormatRFC3339(res.Deadline)
}

func failure(err error) dto.WorkflowEngineResponse {
	return dto.WorkflowEngineResponse{
		Success:   false,
		Error:     errorMessage(err),
		Retryable: isRetryable(err),
	}
}

func errorMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Details != "" {
			return appErr.Message + ": " + appErr.Details
		}
		return appErr.Message
	}
	return err.Error()
}

func isRetryable(err error) bool {
	appErr := errors.GetAppError(err)
	return appErr != nil && appErr.Retryable()
}
