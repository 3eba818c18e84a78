package models

import (
	"gorm.io/datatypes"

	"github.com/caseguard/caseguard/internal/shared/constants"
)

// AssignmentRuleModel keeps an auto-increment Seq as its primary key so
// equal-priority rules order by insertion.
type AssignmentRuleModel struct {
	Seq            uint64         `gorm:"primaryKey;autoIncrement"`
	ID             string         `gorm:"not null;size:64;uniqueIndex"`
	OrganizationID string         `gorm:"not null;size:64;index:idx_rules_org_priority,priority:1"`
	Name           string         `gorm:"not null;size:255"`
	Priority       int            `gorm:"not null;index:idx_rules_org_priority,priority:2"`
	Enabled        bool           `gorm:"not null;default:true"`
	Conditions     datatypes.JSON `gorm:"not null"`
	AssignToUserID *string        `gorm:"size:100"`
	AssignToTeam   *string        `gorm:"size:100"`
	Version        int            `gorm:"not null;default:1"`
	CreatedAt      int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64          `gorm:"autoUpdateTime:false;not null"`
}

func (AssignmentRuleModel) TableName() string {
	return constants.TableAssignmentRules
}

// RuleConditionsJSON is the stored shape of AssignmentRuleModel.Conditions.
type RuleConditionsJSON struct {
	Category   *string  `json:"category,omitempty"`
	Urgency    string   `json:"urgency"`
	Keywords   []string `json:"keywords,omitempty"`
	Department *string  `json:"department,omitempty"`
}
