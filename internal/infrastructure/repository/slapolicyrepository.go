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

type SLAPolicyRepository struct {
	db     *gorm.DB
	mapper mappers.SLAPolicyMapper
}

func NewSLAPolicyRepository(db *gorm.DB) *SLAPolicyRepository {
	return &SLAPolicyRepository{
		db:     db,
		mapper: mappers.NewSLAPolicyMapper(),
	}
}

func (r *SLAPolicyRepository) Create(ctx context.Context, policy *workflow.SLAPolicy) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(policy)).Error; err != nil {
		return fmt.Errorf("failed to create sla policy: %w", err)
	}
	return nil
}

func (r *SLAPolicyRepository) Update(ctx context.Context, policy *workflow.SLAPolicy) error {
	model := r.mapper.ToModel(policy)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SLAPolicyModel{}).
		Where("organization_id = ? AND id = ?", model.OrganizationID, model.ID).
		Updates(map[string]any{
			"name":                   model.Name,
			"critical_response_time": model.CriticalResponseTime,
			"high_response_time":     model.HighResponseTime,
			"medium_response_time":   model.MediumResponseTime,
			"low_response_time":      model.LowResponseTime,
			"is_default":             model.IsDefault,
			"escalate_after_breach":  model.EscalateAfterBreach,
			"escalate_to_user_id":    model.EscalateToUserID,
			"version":                model.Version,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update sla policy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrPolicyNotFound
	}
	return nil
}

func (r *SLAPolicyRepository) GetByID(ctx context.Context, organizationID, policyID string) (*workflow.SLAPolicy, error) {
	var model models.SLAPolicyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("organization_id = ? AND id = ?", organizationID, policyID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get sla policy: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SLAPolicyRepository) List(ctx context.Context, organizationID string) ([]*workflow.SLAPolicy, error) {
	var policyModels []*models.SLAPolicyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("organization_id = ?", organizationID).
		Order("is_default DESC, created_at ASC, id ASC").
		Find(&policyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sla policies: %w", err)
	}
	return r.mapper.ToEntities(policyModels)
}

func (r *SLAPolicyRepository) ClearDefault(ctx context.Context, organizationID string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.SLAPolicyModel{}).
		Where("organization_id = ? AND is_default = ?", organizationID, true).
		Updates(map[string]any{
			"is_default": false,
			"version":    gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to clear default sla policy: %w", err)
	}
	return nil
}
