package models

import "github.com/caseguard/caseguard/internal/shared/constants"

// ReportModel is the engine's view of a report. Times are unix milliseconds.
type ReportModel struct {
	ID             string  `gorm:"primaryKey;size:64"`
	OrganizationID string  `gorm:"not null;size:64;index:idx_reports_org"`
	Title          string  `gorm:"not null;size:255"`
	Description    string  `gorm:"type:text"`
	Category       string  `gorm:"size:100"`
	Department     string  `gorm:"size:100"`
	Urgency        string  `gorm:"not null;size:20"`
	AssignedTo     *string `gorm:"size:100;index:idx_reports_assigned"`
	SLADeadline    *int64  `gorm:"column:sla_deadline"`
	Version        int     `gorm:"not null;default:1"`
	CreatedAt      int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64   `gorm:"autoUpdateTime:false;not null"`
	DeletedAt      *int64  `gorm:"index"`
}

func (ReportModel) TableName() string {
	return constants.TableReports
}
