package valueobjects

import "fmt"

// TransactionType classifies an inventory ledger entry.
type TransactionType string

const (
	TypeReserve    TransactionType = "reserve"
	TypeRelease    TransactionType = "release"
	TypeAdjustment TransactionType = "adjustment"
	TypeIntake     TransactionType = "intake"
)

var validTransactionTypes = map[TransactionType]bool{
	TypeReserve:    true,
	TypeRelease:    true,
	TypeAdjustment: true,
	TypeIntake:     true,
}

func (tt TransactionType) String() string {
	return string(tt)
}

func (tt TransactionType) IsValid() bool {
	return validTransactionTypes[tt]
}

func NewTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return tt, nil
}

// Reason records why the mutation happened; it correlates the ledger row with
// the lifecycle action that drove it.
type Reason string

const (
	ReasonQuotationApproved       Reason = "quotation_approved"
	ReasonWarrantyAutoReplacement Reason = "warranty_auto_replacement"
	ReasonManualAdjustment        Reason = "manual_adjustment"
	ReasonPartIntake              Reason = "part_intake"
	ReasonReservationReleased     Reason = "reservation_released"
)

func (r Reason) String() string {
	return string(r)
}
