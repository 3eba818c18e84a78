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
	"github.com/caseguard/caseguard/internal/shared/errors"
)

// SLATrackerRepository keeps one tracker row per report. Writes after the
// first are version-checked so that concurrent breach checks emit each
// transition once.
type SLATrackerRepository struct {
	db     *gorm.DB
	mapper mappers.SLATrackerMapper
}

func NewSLATrackerRepository(db *gorm.DB) *SLATrackerRepository {
	return &SLATrackerRepository{
		db:     db,
		mapper: mappers.NewSLATrackerMapper(),
	}
}

func (r *SLATrackerRepository) Get(ctx context.Context, organizationID, reportID string) (workflow.SLATracker, error) {
	var model models.SLATrackerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("organization_id = ? AND report_id = ?", organizationID, reportID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.SLATracker{}, workflow.ErrTrackerNotFound
		}
		return workflow.SLATracker{}, fmt.Errorf("failed to get sla tracker: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SLATrackerRepository) Create(ctx context.Context, tracker workflow.SLATracker) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(tracker)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return workflow.ErrTrackerConflict
		}
		return fmt.Errorf("failed to create sla tracker: %w", err)
	}
	return nil
}

func (r *SLATrackerRepository) CompareAndSwap(ctx context.Context, prevVersion int, next workflow.SLATracker) error {
	model := r.mapper.ToModel(next)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SLATrackerModel{}).
		Where("organization_id = ? AND report_id = ? AND version = ?", model.OrganizationID, model.ReportID, prevVersion).
		Updates(map[string]any{
			"policy_id":        model.PolicyID,
			"window_start":     model.WindowStart,
			"deadline":         model.Deadline,
			"state":            model.State,
			"warning_emitted":  model.WarningEmitted,
			"breach_emitted":   model.BreachEmitted,
			"handled_deadline": model.HandledDeadline,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update sla tracker: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workflow.ErrTrackerConflict
	}
	return nil
}

// openTracker selects trackers the sweep still has work for: breach not
// emitted yet, or emitted with the follow-up for the current deadline pending.
const openTracker = "(breach_emitted = ? OR handled_deadline IS NULL OR handled_deadline <> deadline)"

func (r *SLATrackerRepository) ListOpen(ctx context.Context, organizationID string, limit int) ([]workflow.SLATracker, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("organization_id = ?", organizationID).
		Where(openTracker, false).
		Order("deadline ASC, report_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var trackerModels []*models.SLATrackerModel
	if err := query.Find(&trackerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list open sla trackers: %w", err)
	}

	trackers := make([]workflow.SLATracker, 0, len(trackerModels))
	for _, model := range trackerModels {
		tracker, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map sla tracker %s: %w", model.ReportID, err)
		}
		trackers = append(trackers, tracker)
	}
	return trackers, nil
}

func (r *SLATrackerRepository) ListOrganizationsWithOpen(ctx context.Context) ([]string, error) {
	var organizationIDs []string
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.SLATrackerModel{}).
		Where(openTracker, false).
		Distinct("organization_id").
		Order("organization_id ASC").
		Pluck("organization_id", &organizationIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations with open trackers: %w", err)
	}
	return organizationIDs, nil
}
