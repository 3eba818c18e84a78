package mappers

import (
	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
)

type CaseEscalationMapper interface {
	ToEntity(model *models.CaseEscalationModel) *workflow.CaseEscalation
	ToModel(entity *workflow.CaseEscalation) *models.CaseEscalationModel
}

type CaseEscalationMapperImpl struct{}

func NewCaseEscalationMapper() CaseEscalationMapper {
	return &CaseEscalationMapperImpl{}
}

func (m *CaseEscalationMapperImpl) ToEntity(model *models.CaseEscalationModel) *workflow.CaseEscalation {
	if model == nil {
		return nil
	}
	return workflow.ReconstructCaseEscalation(
		model.ID,
		model.OrganizationID,
		model.ReportID,
		model.EscalatedFrom,
		model.EscalatedTo,
		model.Reason,
		model.SLABreached,
		model.DedupeKey,
		fromMillis(model.CreatedAt),
	)
}

func (m *CaseEscalationMapperImpl) ToModel(entity *workflow.CaseEscalation) *models.CaseEscalationModel {
	if entity == nil {
		return nil
	}
	return &models.CaseEscalationModel{
		ID:             entity.ID(),
		OrganizationID: entity.OrganizationID(),
		ReportID:       entity.ReportID(),
		EscalatedFrom:  entity.EscalatedFrom(),
		EscalatedTo:    entity.EscalatedTo(),
		Reason:         entity.Reason(),
		SLABreached:    entity.SLABreached(),
		DedupeKey:      entity.DedupeKey(),
		CreatedAt:      toMillis(entity.CreatedAt()),
	}
}
