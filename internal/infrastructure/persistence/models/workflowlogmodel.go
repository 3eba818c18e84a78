package models

import (
	"gorm.io/datatypes"

	"github.com/caseguard/caseguard/internal/shared/constants"
)

type WorkflowLogModel struct {
	ID             string         `gorm:"primaryKey;size:64"`
	OrganizationID string         `gorm:"not null;size:64;index:idx_logs_report,priority:1"`
	ReportID       string         `gorm:"not null;size:64;index:idx_logs_report,priority:2"`
	Action         string         `gorm:"not null;size:50;index"`
	Details        datatypes.JSON `gorm:"not null"`
	CreatedAt      int64          `gorm:"autoCreateTime:milli;not null;index:idx_logs_report,priority:3"`
}

func (WorkflowLogModel) TableName() string {
	return constants.TableWorkflowLogs
}
