package models

import "gorm.io/datatypes"

type RepairTicketModel struct {
	ID               uint   `gorm:"primaryKey"`
	TicketNumber     string `gorm:"uniqueIndex;size:50;not null"`
	CustomerName     string `gorm:"size:200;not null;index"`
	CustomerEmail    string `gorm:"size:255"`
	DeviceModel      string `gorm:"size:200;not null"`
	DeviceSerial     string `gorm:"size:100;not null;index"`
	IssueDescription string `gorm:"type:text;not null"`
	Technician       string `gorm:"size:100;index"`
	Status           string `gorm:"size:30;not null;index"`
	Version          int    `gorm:"not null;default:1"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (RepairTicketModel) TableName() string {
	return "repair_tickets"
}

type TicketStatusHistoryModel struct {
	ID        uint           `gorm:"primaryKey"`
	TicketID  uint           `gorm:"not null;index"`
	Status    string         `gorm:"size:30;not null"`
	Notes     string         `gorm:"type:text"`
	Actor     string         `gorm:"size:100;not null"`
	Photos    datatypes.JSON `gorm:"type:json"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (TicketStatusHistoryModel) TableName() string {
	return "ticket_status_history"
}

// TicketSequenceModel backs the daily RT-YYYYMMDD-NNNN counter. One row per
// day, bumped under a row lock.
type TicketSequenceModel struct {
	Day       string `gorm:"primaryKey;size:8"`
	LastSeq   int    `gorm:"not null;default:0"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketSequenceModel) TableName() string {
	return "ticket_sequences"
}
