package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/mappers"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/db"
)

type AssignmentRuleRepository struct {
	db     *gorm.DB
	mapper mappers.AssignmentRuleMapper
}

func NewAssignmentRuleRepository(db *gorm.DB) *AssignmentRuleRepository {
	return &AssignmentRuleRepository{
		db:     db,
		mapper: mappers.NewAssignmentRuleMapper(),
	}
}

func (r *AssignmentRuleRepository) Create(ctx context.Context, rule *workflow.AssignmentRule) error {
	model, err := r.mapper.ToModel(rule)
	if err != nil {
		return err
	}
	model.Seq = 0

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create assignment rule: %w", err)
	}
	return rule.SetSequence(model.Seq)
}

func (r *AssignmentRuleRepository) Update(ctx context.Context, rule *workflow.AssignmentRule) error {
	model, err := r.mapper.ToModel(rule)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	// A map so that false and NULL values are written too.
	result := tx.Model(&models.AssignmentRuleModel{}).
		Where("organization_id = ? AND id = ?", model.OrganizationID, model.ID).
		Updates(map[string]any{
			"name":              model.Name,
			"priority":          model.Priority,
			"enabled":           model.Enabled,
			"conditions":        model.Conditions,
			"assign_to_user_id": model.AssignToUserID,
			"assign_to_team":    model.AssignToTeam,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update assignment rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrRuleNotFound
	}
	return nil
}

func (r *AssignmentRuleRepository) GetByID(ctx context.Context, organizationID, ruleID string) (*workflow.AssignmentRule, error) {
	var model models.AssignmentRuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("organization_id = ? AND id = ?", organizationID, ruleID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get assignment rule: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AssignmentRuleRepository) List(ctx context.Context, organizationID string, filter workflow.RuleFilter) ([]*workflow.AssignmentRule, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("organization_id = ?", organizationID)
	if filter.EnabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var ruleModels []*models.AssignmentRuleModel
	if err := query.Order("priority ASC, seq ASC").Find(&ruleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignment rules: %w", err)
	}
	return r.mapper.ToEntities(ruleModels)
}
