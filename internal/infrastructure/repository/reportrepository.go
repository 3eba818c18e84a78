package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/mappers"
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
	"github.com/caseguard/caseguard/internal/shared/db"
)

type ReportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *workflow.Report) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(report)).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, organizationID, reportID string) (*workflow.Report, error) {
	var model models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", organizationID, reportID).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// UpdateOwner is a conditional write: it matches only while the stored
// owner still equals expected.
func (r *ReportRepository) UpdateOwner(
	ctx context.Context,
	organizationID, reportID string,
	expected *string,
	owner string,
	now time.Time,
) error {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ReportModel{}).
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", organizationID, reportID)
	if expected == nil {
		query = query.Where("assigned_to IS NULL")
	} else {
		query = query.Where("assigned_to = ?", *expected)
	}

	result := query.Updates(map[string]any{
		"assigned_to": owner,
		"updated_at":  now.UnixMilli(),
		"version":     gorm.Expr("version + 1"),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update report owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrStalePrecondition
	}
	return nil
}

func (r *ReportRepository) SetSLADeadline(ctx context.Context, organizationID, reportID string, deadline, now time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ReportModel{}).
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", organizationID, reportID).
		Updates(map[string]any{
			"sla_deadline": deadline.UnixMilli(),
			"updated_at":   now.UnixMilli(),
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set report sla deadline: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrReportNotFound
	}
	return nil
}

// MarkDeleted soft-deletes a report. Pending escalations for it then fail
// with a stale precondition.
func (r *ReportRepository) MarkDeleted(ctx context.Context, organizationID, reportID string, now time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ReportModel{}).
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", organizationID, reportID).
		Updates(map[string]any{
			"deleted_at": now.UnixMilli(),
			"updated_at": now.UnixMilli(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrReportNotFound
	}
	return nil
}
