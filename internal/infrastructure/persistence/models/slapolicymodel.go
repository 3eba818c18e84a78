package models

import "github.com/caseguard/caseguard/internal/shared/constants"

type SLAPolicyModel struct {
	ID                   string  `gorm:"primaryKey;size:64"`
	OrganizationID       string  `gorm:"not null;size:64;index:idx_policies_org_default,priority:1"`
	Name                 string  `gorm:"not null;size:255"`
	CriticalResponseTime int     `gorm:"not null"`
	HighResponseTime     int     `gorm:"not null"`
	MediumResponseTime   int     `gorm:"not null"`
	LowResponseTime      int     `gorm:"not null"`
	IsDefault            bool    `gorm:"not null;default:false;index:idx_policies_org_default,priority:2"`
	EscalateAfterBreach  bool    `gorm:"not null;default:false"`
	EscalateToUserID     *string `gorm:"size:100"`
	Version              int     `gorm:"not null;default:1"`
	CreatedAt            int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt            int64   `gorm:"autoUpdateTime:false;not null"`
}

func (SLAPolicyModel) TableName() string {
	return constants.TableSLAPolicies
}
