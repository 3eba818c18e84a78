package models

import "github.com/caseguard/caseguard/internal/shared/constants"

type SLATrackerModel struct {
	OrganizationID  string `gorm:"primaryKey;size:64;index:idx_trackers_open,priority:1"`
	ReportID        string `gorm:"primaryKey;size:64"`
	PolicyID        string `gorm:"not null;size:64"`
	WindowStart     int64  `gorm:"not null"`
	Deadline        int64  `gorm:"not null;index:idx_trackers_open,priority:3"`
	State           string `gorm:"not null;size:20"`
	WarningEmitted  bool   `gorm:"not null;default:false"`
	BreachEmitted   bool   `gorm:"not null;default:false;index:idx_trackers_open,priority:2"`
	HandledDeadline *int64
	Version         int   `gorm:"not null;default:1"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:false;not null"`
}

func (SLATrackerModel) TableName() string {
	return constants.TableSLATrackers
}
