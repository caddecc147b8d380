package part

import (
	"fmt"
	"time"

	vo "servit/internal/domain/part/valueobjects"
	sharedvo "servit/internal/domain/shared/valueobjects"
)

// Part is one physical, serialized inventory unit. Units sharing a part
// number are interchangeable for replacement purposes; the serial number is
// the business key.
//
// Invariant: 0 <= reservedQuantity <= currentStock at all times. The
// repository enforces this atomically for concurrent mutations; the entity
// enforces it for in-transaction mutations.
type Part struct {
	id                      uint
	partNumber              string
	serialNumber            string
	name                    string
	partType                vo.PartType
	unitCost                sharedvo.Money
	currentStock            int
	reservedQuantity        int
	isReserved              bool
	reservedForTicket       *string
	isCustomerPurchased     bool
	datePurchasedByCustomer *time.Time
	warrantyExpiration      *time.Time
	quotationID             *string
	supplierOrderRef        *string
	version                 int
	createdAt               time.Time
	updatedAt               time.Time
	deletedAt               *time.Time
}

func NewPart(
	partNumber string,
	serialNumber string,
	name string,
	partType vo.PartType,
	unitCost sharedvo.Money,
	initialStock int,
	now time.Time,
) (*Part, error) {
	if len(partNumber) == 0 {
		return nil, fmt.Errorf("part number is required")
	}
	if len(serialNumber) == 0 {
		return nil, fmt.Errorf("serial number is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if !partType.IsValid() {
		return nil, fmt.Errorf("invalid part type")
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative")
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("initial stock cannot be negative")
	}

	return &Part{
		partNumber:   partNumber,
		serialNumber: serialNumber,
		name:         name,
		partType:     partType,
		unitCost:     unitCost,
		currentStock: initialStock,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructPart(
	id uint,
	partNumber string,
	serialNumber string,
	name string,
	partType vo.PartType,
	unitCost sharedvo.Money,
	currentStock int,
	reservedQuantity int,
	isReserved bool,
	reservedForTicket *string,
	isCustomerPurchased bool,
	datePurchasedByCustomer *time.Time,
	warrantyExpiration *time.Time,
	quotationID *string,
	supplierOrderRef *string,
	version int,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Part, error) {
	if id == 0 {
		return nil, fmt.Errorf("part ID cannot be zero")
	}
	if len(serialNumber) == 0 {
		return nil, fmt.Errorf("serial number is required")
	}
	if !partType.IsValid() {
		return nil, fmt.Errorf("invalid part type")
	}
	if currentStock < 0 || reservedQuantity < 0 || reservedQuantity > currentStock {
		return nil, fmt.Errorf("inconsistent stock counters: stock=%d reserved=%d", currentStock, reservedQuantity)
	}

	return &Part{
		id:                      id,
		partNumber:              partNumber,
		serialNumber:            serialNumber,
		name:                    name,
		partType:                partType,
		unitCost:                unitCost,
		currentStock:            currentStock,
		reservedQuantity:        reservedQuantity,
		isReserved:              isReserved,
		reservedForTicket:       reservedForTicket,
		isCustomerPurchased:     isCustomerPurchased,
		datePurchasedByCustomer: datePurchasedByCustomer,
		warrantyExpiration:      warrantyExpiration,
		quotationID:             quotationID,
		supplierOrderRef:        supplierOrderRef,
		version:                 version,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
		deletedAt:               deletedAt,
	}, nil
}

func (p *Part) ID() uint                            { return p.id }
func (p *Part) PartNumber() string                  { return p.partNumber }
func (p *Part) SerialNumber() string                { return p.serialNumber }
func (p *Part) Name() string                        { return p.name }
func (p *Part) PartType() vo.PartType               { return p.partType }
func (p *Part) UnitCost() sharedvo.Money            { return p.unitCost }
func (p *Part) CurrentStock() int                   { return p.currentStock }
func (p *Part) ReservedQuantity() int               { return p.reservedQuantity }
func (p *Part) IsReserved() bool                    { return p.isReserved }
func (p *Part) ReservedForTicket() *string          { return p.reservedForTicket }
func (p *Part) IsCustomerPurchased() bool           { return p.isCustomerPurchased }
func (p *Part) DatePurchasedByCustomer() *time.Time { return p.datePurchasedByCustomer }
func (p *Part) WarrantyExpiration() *time.Time      { return p.warrantyExpiration }
func (p *Part) QuotationID() *string                { return p.quotationID }
func (p *Part) SupplierOrderRef() *string           { return p.supplierOrderRef }
func (p *Part) Version() int                        { return p.version }
func (p *Part) CreatedAt() time.Time                { return p.createdAt }
func (p *Part) UpdatedAt() time.Time                { return p.updatedAt }
func (p *Part) DeletedAt() *time.Time               { return p.deletedAt }

func (p *Part) IsDeleted() bool {
	return p.deletedAt != nil
}

// AvailableStock is currentStock minus reservedQuantity, never negative.
func (p *Part) AvailableStock() int {
	return p.currentStock - p.reservedQuantity
}

func (p *Part) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("part ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("part ID cannot be zero")
	}
	p.id = id
	return nil
}

// Reserve holds qty units for the given ticket. The caller must have loaded
// the part under a row lock; the repository re-checks availability on write.
func (p *Part) Reserve(qty int, ticketNumber string, now time.Time) error {
	if qty <= 0 {
		return fmt.Errorf("reservation quantity must be positive")
	}
	if len(ticketNumber) == 0 {
		return fmt.Errorf("ticket number is required")
	}
	if p.IsDeleted() {
		return fmt.Errorf("part is deleted")
	}
	if p.AvailableStock() < qty {
		return fmt.Errorf("insufficient available stock: have %d, need %d", p.AvailableStock(), qty)
	}

	p.reservedQuantity += qty
	p.isReserved = true
	p.reservedForTicket = &ticketNumber
	p.updatedAt = now
	p.version++
	return nil
}

// Release frees up to qty reserved units. Releasing more than is reserved
// clamps at zero rather than driving the counter negative.
func (p *Part) Release(qty int, now time.Time) (released int, err error) {
	if qty <= 0 {
		return 0, fmt.Errorf("release quantity must be positive")
	}
	if p.reservedQuantity == 0 {
		return 0, fmt.Errorf("no reserved quantity to release")
	}

	released = qty
	if released > p.reservedQuantity {
		released = p.reservedQuantity
	}
	p.reservedQuantity -= released
	if p.reservedQuantity == 0 {
		p.isReserved = false
		p.reservedForTicket = nil
	}
	p.updatedAt = now
	p.version++
	return released, nil
}

// AdjustStock mutates currentStock by delta. The result may not drop below
// zero or below the reserved quantity.
func (p *Part) AdjustStock(delta int, now time.Time) error {
	if delta == 0 {
		return fmt.Errorf("adjustment delta cannot be zero")
	}
	next := p.currentStock + delta
	if next < 0 {
		return fmt.Errorf("stock cannot go negative: %d%+d", p.currentStock, delta)
	}
	if next < p.reservedQuantity {
		return fmt.Errorf("stock cannot drop below reserved quantity %d", p.reservedQuantity)
	}
	p.currentStock = next
	p.updatedAt = now
	p.version++
	return nil
}

// MarkCustomerPurchased stamps the purchase date and warranty window set when
// a quotation selecting this part is approved.
func (p *Part) MarkCustomerPurchased(purchasedAt time.Time, warrantyExpiration time.Time, now time.Time) error {
	if p.isCustomerPurchased {
		return fmt.Errorf("part is already customer purchased")
	}
	p.isCustomerPurchased = true
	p.datePurchasedByCustomer = &purchasedAt
	p.warrantyExpiration = &warrantyExpiration
	p.updatedAt = now
	p.version++
	return nil
}

// AttachQuotation ties the part to a quotation so it cannot be offered on a
// second one concurrently.
func (p *Part) AttachQuotation(quotationID string, now time.Time) error {
	if len(quotationID) == 0 {
		return fmt.Errorf("quotation ID is required")
	}
	if p.quotationID != nil && *p.quotationID != quotationID {
		return fmt.Errorf("part is already tied to quotation %s", *p.quotationID)
	}
	p.quotationID = &quotationID
	p.updatedAt = now
	p.version++
	return nil
}

// DetachQuotation frees the part when its quotation resolves without
// selecting it, making it eligible for future quotations again.
func (p *Part) DetachQuotation(now time.Time) {
	if p.quotationID == nil {
		return
	}
	p.quotationID = nil
	p.updatedAt = now
	p.version++
}

// SetSupplierOrderRef records supplier replacement-order metadata.
func (p *Part) SetSupplierOrderRef(ref string, now time.Time) error {
	if len(ref) == 0 {
		return fmt.Errorf("supplier order reference is required")
	}
	p.supplierOrderRef = &ref
	p.updatedAt = now
	p.version++
	return nil
}

// SoftDelete hides the part from aggregate and search views. History rows
// referencing it are retained.
func (p *Part) SoftDelete(now time.Time) error {
	if p.IsDeleted() {
		return fmt.Errorf("part is already deleted")
	}
	if p.reservedQuantity > 0 {
		return fmt.Errorf("cannot delete a part with active reservations")
	}
	p.deletedAt = &now
	p.updatedAt = now
	p.version++
	return nil
}

// IsInWarranty reports whether the part's warranty covers the given instant.
// A missing expiration means no coverage.
func (p *Part) IsInWarranty(now time.Time) bool {
	if p.warrantyExpiration == nil {
		return false
	}
	return !now.After(*p.warrantyExpiration)
}

// EligibleForQuotation applies the candidate predicate used at quotation
// creation. Only free, stocked, standard parts with no prior ownership or
// supplier-order strings attached may be offered to a customer.
func (p *Part) EligibleForQuotation() error {
	switch {
	case p.IsDeleted():
		return fmt.Errorf("part %s is deleted", p.serialNumber)
	case p.isReserved:
		return fmt.Errorf("part %s is already reserved", p.serialNumber)
	case p.isCustomerPurchased:
		return fmt.Errorf("part %s is already customer purchased", p.serialNumber)
	case !p.partType.IsStandard():
		return fmt.Errorf("part %s has non-standard type %s", p.serialNumber, p.partType)
	case p.quotationID != nil:
		return fmt.Errorf("part %s is tied to quotation %s", p.serialNumber, *p.quotationID)
	case p.supplierOrderRef != nil:
		return fmt.Errorf("part %s carries supplier order metadata", p.serialNumber)
	}
	return nil
}
