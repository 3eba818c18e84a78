package mappers

import (
	"fmt"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/mapper"
)

type SLAPolicyMapper interface {
	ToEntity(model *models.SLAPolicyModel) (*workflow.SLAPolicy, error)
	ToModel(entity *workflow.SLAPolicy) *models.SLAPolicyModel
	ToEntities(models []*models.SLAPolicyModel) ([]*workflow.SLAPolicy, error)
}

type SLAPolicyMapperImpl struct{}

func NewSLAPolicyMapper() SLAPolicyMapper {
	return &SLAPolicyMapperImpl{}
}

func (m *SLAPolicyMapperImpl) ToEntity(model *models.SLAPolicyModel) (*workflow.SLAPolicy, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := workflow.ReconstructSLAPolicy(
		model.ID,
		model.OrganizationID,
		model.Name,
		workflow.ResponseTimes{
			Critical: model.CriticalResponseTime,
			High:     model.HighResponseTime,
			Medium:   model.MediumResponseTime,
			Low:      model.LowResponseTime,
		},
		model.IsDefault,
		model.EscalateAfterBreach,
		model.EscalateToUserID,
		model.Version,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct sla policy entity: %w", err)
	}
	return entity, nil
}

func (m *SLAPolicyMapperImpl) ToModel(entity *workflow.SLAPolicy) *models.SLAPolicyModel {
	if entity == nil {
		return nil
	}
	rt := entity.ResponseTimes()
	return &models.SLAPolicyModel{
		ID:                   entity.ID(),
		OrganizationID:       entity.OrganizationID(),
		Name:                 entity.Name(),
		CriticalResponseTime: rt.Critical,
		HighResponseTime:     rt.High,
		MediumResponseTime:   rt.Medium,
		LowResponseTime:      rt.Low,
		IsDefault:            entity.IsDefault(),
		EscalateAfterBreach:  entity.EscalateAfterBreach(),
		EscalateToUserID:     entity.EscalateToUserID(),
		Version:              entity.Version(),
		CreatedAt:            toMillis(entity.CreatedAt()),
		UpdatedAt:            toMillis(entity.UpdatedAt()),
	}
}

func (m *SLAPolicyMapperImpl) ToEntities(items []*models.SLAPolicyModel) ([]*workflow.SLAPolicy, error) {
	return mapper.MapSlicePtrWithID(items, m.ToEntity, func(model *models.SLAPolicyModel) string {
		return model.ID
	})
}
