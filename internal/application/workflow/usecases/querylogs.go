package usecases

import (
	"context"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/constants"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

type ListWorkflowLogsQuery struct {
	OrganizationID string
	ReportID       string
	Action         string
	Page           int
	PageSize       int
}

type ListWorkflowLogsResult struct {
	Entries  []*dto.WorkflowLogEntryDTO
	Total    int64
	Page     int
	PageSize int
}

type ListWorkflowLogsUseCase struct {
	logRepo workflow.WorkflowLogRepository
	logger  logger.Interface
}

func NewListWorkflowLogsUseCase(logRepo workflow.WorkflowLogRepository, logger logger.Interface) *ListWorkflowLogsUseCase {
	return &ListWorkflowLogsUseCase{logRepo: logRepo, logger: logger}
}

func (uc *ListWorkflowLogsUseCase) Execute(ctx context.Context, query ListWorkflowLogsQuery) (*ListWorkflowLogsResult, error) {
	if err := validateReportRef(query.OrganizationID, query.ReportID); err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	filter := workflow.LogFilter{Page: page, PageSize: pageSize}
	if query.Action != "" {
		action, err := vo.NewLogAction(query.Action)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Action = &action
	}

	entries, total, err := uc.logRepo.ListByReport(ctx, query.OrganizationID, query.ReportID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list workflow logs", "report_id", query.ReportID, "error", err)
		return nil, toAppError(err, "failed to list workflow logs")
	}

	return &ListWorkflowLogsResult{
		Entries:  dto.ToWorkflowLogEntryDTOs(entries),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

type ListEscalationsQuery struct {
	OrganizationID string
	ReportID       string
}

type ListEscalationsUseCase struct {
	escalationRepo workflow.EscalationRepository
	logger         logger.Interface
}

func NewListEscalationsUseCase(escalationRepo workflow.EscalationRepository, logger logger.Interface) *ListEscalationsUseCase {
	return &ListEscalationsUseCase{escalationRepo: escalationRepo, logger: logger}
}

func (uc *ListEscalationsUseCase) Execute(ctx context.Context, query ListEscalationsQuery) ([]*dto.CaseEscalationDTO, error) {
	if err := validateReportRef(query.OrganizationID, query.ReportID); err != nil {
		return nil, err
	}

	items, err := uc.escalationRepo.ListByReport(ctx, query.OrganizationID, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to list escalations", "report_id", query.ReportID, "error", err)
		return nil, toAppError(err, "failed to list escalations")
	}
	return dto.ToCaseEscalationDTOs(items), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
