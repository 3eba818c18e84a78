package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/mapper"
)

type AssignmentRuleMapper interface {
	ToEntity(model *models.AssignmentRuleModel) (*workflow.AssignmentRule, error)
	ToModel(entity *workflow.AssignmentRule) (*models.AssignmentRuleModel, error)
	ToEntities(models []*models.AssignmentRuleModel) ([]*workflow.AssignmentRule, error)
}

type AssignmentRuleMapperImpl struct{}

func NewAssignmentRuleMapper() AssignmentRuleMapper {
	return &AssignmentRuleMapperImpl{}
}

func (m *AssignmentRuleMapperImpl) ToEntity(model *models.AssignmentRuleModel) (*workflow.AssignmentRule, error) {
	if model == nil {
		return nil, nil
	}

	var stored models.RuleConditionsJSON
	if len(model.Conditions) > 0 {
		if err := json.Unmarshal(model.Conditions, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode rule conditions: %w", err)
		}
	}
	urgency, err := vo.NewConditionUrgency(stored.Urgency)
	if err != nil {
		return nil, fmt.Errorf("failed to map rule urgency: %w", err)
	}

	var userID, team string
	if model.AssignToUserID != nil {
		userID = *model.AssignToUserID
	}
	if model.AssignToTeam != nil {
		team = *model.AssignToTeam
	}
	target, err := vo.NewAssignmentTarget(userID, team)
	if err != nil {
		return nil, fmt.Errorf("failed to map rule target: %w", err)
	}

	entity, err := workflow.ReconstructAssignmentRule(
		model.ID,
		model.OrganizationID,
		model.Name,
		model.Priority,
		model.Enabled,
		workflow.RuleConditions{
			Category:   stored.Category,
			Urgency:    urgency,
			Keywords:   stored.Keywords,
			Department: stored.Department,
		},
		target,
		model.Seq,
		model.Version,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct assignment rule entity: %w", err)
	}
	return entity, nil
}

func (m *AssignmentRuleMapperImpl) ToModel(entity *workflow.AssignmentRule) (*models.AssignmentRuleModel, error) {
	if entity == nil {
		return nil, nil
	}

	cond := entity.Conditions()
	conditions, err := json.Marshal(models.RuleConditionsJSON{
		Category:   cond.Category,
		Urgency:    cond.Urgency.String(),
		Keywords:   cond.Keywords,
		Department: cond.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rule conditions: %w", err)
	}

	model := &models.AssignmentRuleModel{
		Seq:            entity.Sequence(),
		ID:             entity.ID(),
		OrganizationID: entity.OrganizationID(),
		Name:           entity.Name(),
		Priority:       entity.Priority(),
		Enabled:        entity.IsEnabled(),
		Conditions:     conditions,
		Version:        entity.Version(),
		CreatedAt:      toMillis(entity.CreatedAt()),
		UpdatedAt:      toMillis(entity.UpdatedAt()),
	}
	if userID, ok := entity.Target().UserID(); ok {
		model.AssignToUserID = &userID
	}
	if team, ok := entity.Target().Team(); ok {
		model.AssignToTeam = &team
	}
	return model, nil
}

func (m *AssignmentRuleMapperImpl) ToEntities(items []*models.AssignmentRuleModel) ([]*workflow.AssignmentRule, error) {
	return mapper.MapSlicePtrWithID(items, m.ToEntity, func(model *models.AssignmentRuleModel) string {
		return model.ID
	})
}
