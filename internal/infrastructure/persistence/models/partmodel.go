package models

type PartModel struct {
	ID                      uint   `gorm:"primaryKey"`
	PartNumber              string `gorm:"size:100;not null;index"`
	SerialNumber            string `gorm:"uniqueIndex;size:100;not null"`
	Name                    string `gorm:"size:200;not null"`
	PartType                string `gorm:"size:20;not null;index"`
	UnitCostCents           int64  `gorm:"not null"`
	UnitCostCurrency        string `gorm:"size:3;not null"`
	CurrentStock            int    `gorm:"not null;default:0"`
	ReservedQuantity        int    `gorm:"not null;default:0"`
	IsReserved              bool   `gorm:"not null;default:false"`
	ReservedForTicket       *string
	IsCustomerPurchased     bool `gorm:"not null;default:false"`
	DatePurchasedByCustomer *int64
	WarrantyExpiration      *int64
	QuotationID             *string `gorm:"size:50;index"`
	SupplierOrderRef        *string `gorm:"size:100"`
	Version                 int     `gorm:"not null;default:1"`
	CreatedAt               int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt               int64   `gorm:"autoUpdateTime:milli;not null"`
	DeletedAt               *int64  `gorm:"index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (PartModel) TableName() string {
	return "parts"
}
