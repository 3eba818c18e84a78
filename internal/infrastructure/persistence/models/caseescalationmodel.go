package models

import "github.com/caseguard/caseguard/internal/shared/constants"

// CaseEscalationModel is append-only. The unique (organization_id,
// dedupe_key) index backs the at-most-once escalation guarantee.
type CaseEscalationModel struct {
	ID             string  `gorm:"primaryKey;size:64"`
	OrganizationID string  `gorm:"not null;size:64;uniqueIndex:idx_escalations_dedupe,priority:1;index:idx_escalations_report,priority:1"`
	ReportID       string  `gorm:"not null;size:64;index:idx_escalations_report,priority:2"`
	EscalatedFrom  *string `gorm:"size:100"`
	EscalatedTo    string  `gorm:"not null;size:100"`
	Reason         string  `gorm:"type:text"`
	SLABreached    bool    `gorm:"column:sla_breached;not null;default:false"`
	DedupeKey      string  `gorm:"not null;size:255;uniqueIndex:idx_escalations_dedupe,priority:2"`
	CreatedAt      int64   `gorm:"autoCreateTime:milli;not null"`
}

func (CaseEscalationModel) TableName() string {
	return constants.TableCaseEscalations
}
