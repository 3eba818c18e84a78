package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/mappers"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/mapper"
)

// WorkflowLogRepository is append-only; entries are never updated.
type WorkflowLogRepository struct {
	db     *gorm.DB
	mapper mappers.WorkflowLogMapper
}

func NewWorkflowLogRepository(db *gorm.DB) *WorkflowLogRepository {
	return &WorkflowLogRepository{
		db:     db,
		mapper: mappers.NewWorkflowLogMapper(),
	}
}

func (r *WorkflowLogRepository) Append(ctx context.Context, entries ...*workflow.WorkflowLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	logModels, err := mapper.MapSliceWithError(entries, r.mapper.ToModel)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(&logModels).Error; err != nil {
		return fmt.Errorf("failed to append workflow log: %w", err)
	}
	return nil
}

// ListByReport returns entries oldest first.
func (r *WorkflowLogRepository) ListByReport(
	ctx context.Context,
	organizationID, reportID string,
	filter workflow.LogFilter,
) ([]*workflow.WorkflowLogEntry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.WorkflowLogModel{}).
		Where("organization_id = ? AND report_id = ?", organizationID, reportID)
	if filter.Action != nil {
		query = query.Where("action = ?", filter.Action.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count workflow logs: %w", err)
	}

	query = query.Order("created_at ASC, id ASC")
	if filter.PageSize > 0 {
		page := max(filter.Page, 1)
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var logModels []*models.WorkflowLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list workflow logs: %w", err)
	}

	entries, err := mapper.MapSlicePtrWithID(logModels, r.mapper.ToEntity, func(m *models.WorkflowLogModel) string {
		return m.ID
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

var _ workflow.WorkflowLogRepository = (*WorkflowLogRepository)(nil)
