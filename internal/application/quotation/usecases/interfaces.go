// Package usecases implements the quotation lifecycle: creation, customer
// approval (with a one-time code), technician override, denial, and the
// scheduler-driven reminder and expiry passes.
package usecases

import "context"

// ApprovalOTPStore issues and checks the one-time codes customers use to
// approve a quotation. Verify only checks the code, so a failed approval
// does not burn it; Consume discards it once the approval has committed.
type ApprovalOTPStore interface {
	Generate(ctx context.Context, quotationID string) (string, error)
	Verify(ctx context.Context, quotationID, code string) error
	Consume(ctx context.Context, quotationID string) error
}

// Config carries the lifecycle timers and stock alert threshold the use
// cases need.
type Config struct {
	ExpiryDays           int
	ReminderDelayHours   int
	CustomerWarrantyDays int
	LowStockThreshold    int
}
