package mappers

import (
	"fmt"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/jsonvalue"
)

type WorkflowLogMapper interface {
	ToEntity(model *models.WorkflowLogModel) (*workflow.WorkflowLogEntry, error)
	ToModel(entity *workflow.WorkflowLogEntry) (*models.WorkflowLogModel, error)
}

type WorkflowLogMapperImpl struct{}

func NewWorkflowLogMapper() WorkflowLogMapper {
	return &WorkflowLogMapperImpl{}
}

func (m *WorkflowLogMapperImpl) ToEntity(model *models.WorkflowLogModel) (*workflow.WorkflowLogEntry, error) {
	if model == nil {
		return nil, nil
	}

	action, err := vo.NewLogAction(model.Action)
	if err != nil {
		return nil, fmt.Errorf("failed to map log action: %w", err)
	}
	details, err := jsonvalue.ParseObject(model.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to decode log details: %w", err)
	}

	return workflow.ReconstructWorkflowLogEntry(
		model.ID,
		model.OrganizationID,
		model.ReportID,
		action,
		details,
		fromMillis(model.CreatedAt),
	), nil
}

func (m *WorkflowLogMapperImpl) ToModel(entity *workflow.WorkflowLogEntry) (*models.WorkflowLogModel, error) {
	if entity == nil {
		return nil, nil
	}

	details, err := entity.Details().Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode log details: %w", err)
	}

	return &models.WorkflowLogModel{
		ID:             entity.ID(),
		OrganizationID: entity.OrganizationID(),
		ReportID:       entity.ReportID(),
		Action:         entity.Action().String(),
		Details:        details,
		CreatedAt:      toMillis(entity.CreatedAt()),
	}, nil
}
