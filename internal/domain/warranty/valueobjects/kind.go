package valueobjects

import "fmt"

// ClaimKind is the classifier's verdict for a warranty check-in.
type ClaimKind string

const (
	KindAutoReplacement         ClaimKind = "auto_replacement"
	KindInWarrantyRepair        ClaimKind = "in_warranty_repair"
	KindPendingAdminReview      ClaimKind = "pending_admin_review"
	KindOutOfWarrantyChargeable ClaimKind = "out_of_warranty_chargeable"
)

var claimKinds = map[ClaimKind]struct{}{
	KindAutoReplacement:         {},
	KindInWarrantyRepair:        {},
	KindPendingAdminReview:      {},
	KindOutOfWarrantyChargeable: {},
}

func (k ClaimKind) String() string {
	return string(k)
}

func (k ClaimKind) IsValid() bool {
	_, ok := claimKinds[k]
	return ok
}

// IsChargeable reports whether the customer pays for the work.
func (k ClaimKind) IsChargeable() bool {
	return k == KindOutOfWarrantyChargeable
}

func NewClaimKind(s string) (ClaimKind, error) {
	k := ClaimKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid claim kind: %s", s)
	}
	return k, nil
}
