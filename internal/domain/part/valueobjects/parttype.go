package valueobjects

import "fmt"

type PartType string

const (
	// TypeStandard is a regular stocked spare part, the only type eligible
	// for quotation candidates.
	TypeStandard PartType = "standard"
	// TypeSupplierOrder is a part expected from a supplier replacement order.
	TypeSupplierOrder PartType = "supplier_order"
	// TypeRefurbished is a part recovered from a returned device.
	TypeRefurbished PartType = "refurbished"
)

var validPartTypes = map[PartType]bool{
	TypeStandard:      true,
	TypeSupplierOrder: true,
	TypeRefurbished:   true,
}

func (pt PartType) String() string {
	return string(pt)
}

func (pt PartType) IsValid() bool {
	return validPartTypes[pt]
}

func (pt PartType) IsStandard() bool {
	return pt == TypeStandard
}

func NewPartType(s string) (PartType, error) {
	pt := PartType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid part type: %s", s)
	}
	return pt, nil
}
