package mappers

import (
	"fmt"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
)

type SLATrackerMapper interface {
	ToEntity(model *models.SLATrackerModel) (workflow.SLATracker, error)
	ToModel(entity workflow.SLATracker) *models.SLATrackerModel
}

type SLATrackerMapperImpl struct{}

func NewSLATrackerMapper() SLATrackerMapper {
	return &SLATrackerMapperImpl{}
}

func (m *SLATrackerMapperImpl) ToEntity(model *models.SLATrackerModel) (workflow.SLATracker, error) {
	state, err := vo.NewSLAState(model.State)
	if err != nil {
		return workflow.SLATracker{}, fmt.Errorf("failed to map sla state: %w", err)
	}
	return workflow.SLATracker{
		OrganizationID:  model.OrganizationID,
		ReportID:        model.ReportID,
		PolicyID:        model.PolicyID,
		WindowStart:     fromMillis(model.WindowStart),
		Deadline:        fromMillis(model.Deadline),
		State:           state,
		WarningEmitted:  model.WarningEmitted,
		BreachEmitted:   model.BreachEmitted,
		HandledDeadline: fromMillisPtr(model.HandledDeadline),
		Version:         model.Version,
		UpdatedAt:       fromMillis(model.UpdatedAt),
	}, nil
}

func (m *SLATrackerMapperImpl) ToModel(entity workflow.SLATracker) *models.SLATrackerModel {
	return &models.SLATrackerModel{
		OrganizationID:  entity.OrganizationID,
		ReportID:        entity.ReportID,
		PolicyID:        entity.PolicyID,
		WindowStart:     toMillis(entity.WindowStart),
		Deadline:        toMillis(entity.Deadline),
		State:           entity.State.String(),
		WarningEmitted:  entity.WarningEmitted,
		BreachEmitted:   entity.BreachEmitted,
		HandledDeadline: toMillisPtr(entity.HandledDeadline),
		Version:         entity.Version,
		UpdatedAt:       toMillis(entity.UpdatedAt),
	}
}
