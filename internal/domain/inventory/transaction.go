// Package inventory holds the append-only audit trail of stock and
// reservation changes. Rows are written in the same transaction as the part
// mutation they describe and are never updated or deleted.
package inventory

import (
	"fmt"
	"time"

	vo "servit/internal/domain/inventory/valueobjects"
)

type Transaction struct {
	id             uint
	reference      string
	txType         vo.TransactionType
	reason         vo.Reason
	partID         uint
	quantityDelta  int
	stockBefore    int
	stockAfter     int
	reservedBefore int
	reservedAfter  int
	actor          string
	ticketNumber   *string
	quotationID    *string
	createdAt      time.Time
}

func NewTransaction(
	reference string,
	txType vo.TransactionType,
	reason vo.Reason,
	partID uint,
	quantityDelta int,
	stockBefore, stockAfter int,
	reservedBefore, reservedAfter int,
	actor string,
	ticketNumber *string,
	quotationID *string,
	now time.Time,
) (*Transaction, error) {
	if len(reference) == 0 {
		return nil, fmt.Errorf("transaction reference is required")
	}
	if !txType.IsValid() {
		return nil, fmt.Errorf("invalid transaction type")
	}
	if partID == 0 {
		return nil, fmt.Errorf("part ID is required")
	}
	if len(actor) == 0 {
		return nil, fmt.Errorf("actor is required")
	}
	if stockBefore < 0 || stockAfter < 0 || reservedBefore < 0 || reservedAfter < 0 {
		return nil, fmt.Errorf("counters cannot be negative")
	}

	return &Transaction{
		reference:      reference,
		txType:         txType,
		reason:         reason,
		partID:         partID,
		quantityDelta:  quantityDelta,
		stockBefore:    stockBefore,
		stockAfter:     stockAfter,
		reservedBefore: reservedBefore,
		reservedAfter:  reservedAfter,
		actor:          actor,
		ticketNumber:   ticketNumber,
		quotationID:    quotationID,
		createdAt:      now,
	}, nil
}

func ReconstructTransaction(
	id uint,
	reference string,
	txType vo.TransactionType,
	reason vo.Reason,
	partID uint,
	quantityDelta int,
	stockBefore, stockAfter int,
	reservedBefore, reservedAfter int,
	actor string,
	ticketNumber *string,
	quotationID *string,
	createdAt time.Time,
) (*Transaction, error) {
	if id == 0 {
		return nil, fmt.Errorf("transaction ID cannot be zero")
	}
	tx, err := NewTransaction(reference, txType, reason, partID, quantityDelta,
		stockBefore, stockAfter, reservedBefore, reservedAfter, actor, ticketNumber, quotationID, createdAt)
	if err != nil {
		return nil, err
	}
	tx.id = id
	return tx, nil
}

func (t *Transaction) ID() uint                   { return t.id }
func (t *Transaction) Reference() string          { return t.reference }
func (t *Transaction) Type() vo.TransactionType   { return t.txType }
func (t *Transaction) Reason() vo.Reason          { return t.reason }
func (t *Transaction) PartID() uint               { return t.partID }
func (t *Transaction) QuantityDelta() int         { return t.quantityDelta }
func (t *Transaction) StockBefore() int           { return t.stockBefore }
func (t *Transaction) StockAfter() int            { return t.stockAfter }
func (t *Transaction) ReservedBefore() int        { return t.reservedBefore }
func (t *Transaction) ReservedAfter() int         { return t.reservedAfter }
func (t *Transaction) Actor() string              { return t.actor }
func (t *Transaction) TicketNumber() *string      { return t.ticketNumber }
func (t *Transaction) QuotationID() *string       { return t.quotationID }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }

func (t *Transaction) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("transaction ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("transaction ID cannot be zero")
	}
	t.id = id
	return nil
}
