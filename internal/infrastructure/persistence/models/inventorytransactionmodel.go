package models

// InventoryTransactionModel is append-only: rows are inserted in the same
// database transaction as the part mutation they describe and never updated.
type InventoryTransactionModel struct {
	ID             uint    `gorm:"primaryKey"`
	Reference      string  `gorm:"size:64;not null;index"`
	Type           string  `gorm:"size:20;not null;index"`
	Reason         string  `gorm:"size:40;not null;index"`
	PartID         uint    `gorm:"not null;index"`
	QuantityDelta  int     `gorm:"not null"`
	StockBefore    int     `gorm:"not null"`
	StockAfter     int     `gorm:"not null"`
	ReservedBefore int     `gorm:"not null"`
	ReservedAfter  int     `gorm:"not null"`
	Actor          string  `gorm:"size:100;not null"`
	TicketNumber   *string `gorm:"size:50;index"`
	QuotationID    *string `gorm:"size:50;index"`
	CreatedAt      int64   `gorm:"autoCreateTime:milli;not null;index"`
}

func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}
