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

// EscalationRepository stores the append-only escalation history.
type EscalationRepository struct {
	db     *gorm.DB
	mapper mappers.CaseEscalationMapper
}

func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{
		db:     db,
		mapper: mappers.NewCaseEscalationMapper(),
	}
}

func (r *EscalationRepository) Create(ctx context.Context, escalation *workflow.CaseEscalation) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(escalation)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return workflow.ErrDuplicateEscalation
		}
		return fmt.Errorf("failed to create case escalation: %w", err)
	}
	return nil
}

// GetByDedupeKey returns nil when no escalation carries the key.
func (r *EscalationRepository) GetByDedupeKey(ctx context.Context, organizationID, dedupeKey string) (*workflow.CaseEscalation, error) {
	var model models.CaseEscalationModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("organization_id = ? AND dedupe_key = ?", organizationID, dedupeKey).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get case escalation: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *EscalationRepository) ListByReport(ctx context.Context, organizationID, reportID string) ([]*workflow.CaseEscalation, error) {
	var escalationModels []*models.CaseEscalationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("organization_id = ? AND report_id = ?", organizationID, reportID).
		Order("created_at ASC, id ASC").
		Find(&escalationModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list case escalations: %w", err)
	}

	items := make([]*workflow.CaseEscalation, 0, len(escalationModels))
	for _, model := range escalationModels {
		items = append(items, r.mapper.ToEntity(model))
	}
	return items, nil
}
