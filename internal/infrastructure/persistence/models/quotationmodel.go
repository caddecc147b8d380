package models

import "gorm.io/datatypes"

type QuotationModel struct {
	ID                 uint           `gorm:"primaryKey"`
	QuotationID        string         `gorm:"uniqueIndex;size:50;not null"`
	RepairTicketNumber string         `gorm:"size:50;not null;index"`
	CandidatePartIDs   datatypes.JSON `gorm:"type:json;not null"`
	SelectedPartID     *uint
	LaborCostCents     int64  `gorm:"not null"`
	LaborCostCurrency  string `gorm:"size:3;not null"`
	TotalCostCents     *int64
	TotalCostCurrency  *string `gorm:"size:3"`
	Status             string  `gorm:"size:20;not null;index"`
	ExpiresAt          int64   `gorm:"not null;index"`
	NextReminderAt     *int64  `gorm:"index"`
	LastReminderSentAt *int64
	ReminderSendCount  int `gorm:"not null;default:0"`
	SummarySentAt      *int64
	ApprovedByOverride bool   `gorm:"not null;default:false"`
	OverrideNotes      string `gorm:"type:text"`
	OverriddenAt       *int64
	RespondedAt        *int64
	RespondedBy        string `gorm:"size:100"`
	Version            int    `gorm:"not null;default:1"`
	CreatedAt          int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (QuotationModel) TableName() string {
	return "quotations"
}
