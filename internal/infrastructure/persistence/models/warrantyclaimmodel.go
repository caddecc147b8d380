package models

type WarrantyClaimModel struct {
	ID               uint   `gorm:"primaryKey"`
	ClaimID          string `gorm:"uniqueIndex;size:50;not null"`
	PartID           *uint  `gorm:"index"`
	PartSerial       string `gorm:"size:100;not null;index"`
	TicketNumber     string `gorm:"size:50;not null;index"`
	Kind             string `gorm:"size:40;not null;index"`
	Status           string `gorm:"size:20;not null;index"`
	IssueDescription string `gorm:"type:text;not null"`
	Tampered         bool   `gorm:"not null;default:false"`
	ResolutionNotes  string `gorm:"type:text"`
	ResolvedBy       string `gorm:"size:100"`
	ResolvedAt       *int64
	Version          int   `gorm:"not null;default:1"`
	CreatedAt        int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (WarrantyClaimModel) TableName() string {
	return "warranty_claims"
}
