package http

import (
	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	reportRepo     workflow.ReportRepository
	ruleRepo       workflow.AssignmentRuleRepository
	policyRepo     workflow.SLAPolicyRepository
	escalationRepo workflow.EscalationRepository
	logRepo        workflow.WorkflowLogRepository
	trackerRepo    workflow.SLATrackerRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		reportRepo:     repository.NewReportRepository(db),
		ruleRepo:       repository.NewAssignmentRuleRepository(db),
		policyRepo:     repository.NewSLAPolicyRepository(db),
		escalationRepo: repository.NewEscalationRepository(db),
		logRepo:        repository.NewWorkflowLogRepository(db),
		trackerRepo:    repository.NewSLATrackerRepository(db),
	}
}
