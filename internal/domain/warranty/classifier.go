package warranty

import (
	"time"

	"servit/internal/domain/part"
	vo "servit/internal/domain/warranty/valueobjects"
)

// Verdict is the classifier's routing decision for a warranty check-in.
type Verdict struct {
	Kind       vo.ClaimKind
	StatusCode string
	Message    string
}

const (
	CodeAutoReplacement  = "WARRANTY_AUTO_REPLACEMENT"
	CodeInWarrantyRepair = "WARRANTY_REPAIR"
	CodeAdminReview      = "WARRANTY_ADMIN_REVIEW"
	CodeChargeable       = "OUT_OF_WARRANTY"
)

// ClassifierConfig carries the shop's warranty policy knobs.
type ClassifierConfig struct {
	// AutoReplacementDays is the post-purchase window in which a defective
	// part is swapped without admin sign-off.
	AutoReplacementDays int
}

// Classify routes a checked-in part. Rules apply in strict order: evidence
// of tampering voids everything; an unrecognized serial needs a human; no
// warranty coverage is chargeable; coverage with an unknown purchase date
// needs a human; a fresh purchase is replaced outright; anything else is an
// in-warranty repair.
func Classify(p *part.Part, tampered bool, cfg ClassifierConfig, now time.Time) Verdict {
	if tampered {
		return Verdict{
			Kind:       vo.KindOutOfWarrantyChargeable,
			StatusCode: CodeChargeable,
			Message:    "tampering voids the warranty; repair is chargeable",
		}
	}
	if p == nil {
		return Verdict{
			Kind:       vo.KindPendingAdminReview,
			StatusCode: CodeAdminReview,
			Message:    "serial number not found in inventory; routed to admin review",
		}
	}
	if !p.IsInWarranty(now) {
		return Verdict{
			Kind:       vo.KindOutOfWarrantyChargeable,
			StatusCode: CodeChargeable,
			Message:    "warranty is expired or absent; repair is chargeable",
		}
	}
	purchasedAt := p.DatePurchasedByCustomer()
	if purchasedAt == nil {
		return Verdict{
			Kind:       vo.KindPendingAdminReview,
			StatusCode: CodeAdminReview,
			Message:    "purchase date is missing; routed to admin review",
		}
	}
	if now.Sub(*purchasedAt) <= time.Duration(cfg.AutoReplacementDays)*24*time.Hour {
		return Verdict{
			Kind:       vo.KindAutoReplacement,
			StatusCode: CodeAutoReplacement,
			Message:    "purchased within the replacement window; part will be swapped",
		}
	}
	return Verdict{
		Kind:       vo.KindInWarrantyRepair,
		StatusCode: CodeInWarrantyRepair,
		Message:    "covered by warranty; routed to repair at no charge",
	}
}
