package migration

import (
	"github.com/caseguard/caseguard/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model, in dependency-free order.
func AutoMigrateModels() []any {
	return []any{
		&models.ReportModel{},
		&models.AssignmentRuleModel{},
		&models.SLAPolicyModel{},
		&models.CaseEscalationModel{},
		&models.WorkflowLogModel{},
		&models.SLATrackerModel{},
	}
}
