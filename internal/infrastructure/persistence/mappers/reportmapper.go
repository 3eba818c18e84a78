package mappers

import (
	"fmt"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
)

type ReportMapper interface {
	ToEntity(model *models.ReportModel) (*workflow.Report, error)
	ToModel(entity *workflow.Report) *models.ReportModel
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

func (m *ReportMapperImpl) ToEntity(model *models.ReportModel) (*workflow.Report, error) {
	if model == nil {
		return nil, nil
	}

	urgency, err := vo.NewUrgency(model.Urgency)
	if err != nil {
		return nil, fmt.Errorf("failed to map report urgency: %w", err)
	}

	entity, err := workflow.ReconstructReport(
		model.ID,
		model.OrganizationID,
		model.Title,
		model.Description,
		model.Category,
		model.Department,
		urgency,
		model.AssignedTo,
		fromMillisPtr(model.SLADeadline),
		model.Version,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
		fromMillisPtr(model.DeletedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct report entity: %w", err)
	}
	return entity, nil
}

func (m *ReportMapperImpl) ToModel(entity *workflow.Report) *models.ReportModel {
	if entity == nil {
		return nil
	}
	return &models.ReportModel{
		ID:             entity.ID(),
		OrganizationID: entity.OrganizationID(),
		Title:          entity.Title(),
		Description:    entity.Description(),
		Category:       entity.Category(),
		Department:     entity.Department(),
		Urgency:        entity.Urgency().String(),
		AssignedTo:     entity.AssignedTo(),
		SLADeadline:    toMillisPtr(entity.SLADeadline()),
		Version:        entity.Version(),
		CreatedAt:      toMillis(entity.CreatedAt()),
		UpdatedAt:      toMillis(entity.UpdatedAt()),
		DeletedAt:      toMillisPtr(entity.DeletedAt()),
	}
}
