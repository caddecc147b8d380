package shared

import (
	"context"
	"fmt"
	"time"

	"servit/internal/domain/part"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

// NotifyStockLevel raises a low-stock alert when available stock crosses the
// threshold downward, and the symmetric restored notice on the upward
// crossing. Every use case that moves stock calls it after its transaction
// commits; delivery failures are logged and dropped.
func NotifyStockLevel(
	log logger.Interface,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	threshold int,
	p *part.Part,
	beforeAvailable int,
	ticketNumber string,
	now time.Time,
) {
	afterAvailable := p.AvailableStock()
	wasLow := beforeAvailable <= threshold
	isLow := afterAvailable <= threshold
	if wasLow == isLow {
		return
	}

	var message string
	var event events.DomainEvent
	if isLow {
		message = fmt.Sprintf("low stock: part %s (%s) has %d unit(s) available (threshold %d)",
			p.PartNumber(), p.SerialNumber(), afterAvailable, threshold)
		event = part.NewLowStockEvent(p.ID(), p.PartNumber(), afterAvailable, threshold, now)
	} else {
		message = fmt.Sprintf("stock restored: part %s (%s) is back to %d unit(s) available (threshold %d)",
			p.PartNumber(), p.SerialNumber(), afterAvailable, threshold)
		event = part.NewStockRestoredEvent(p.ID(), p.PartNumber(), afterAvailable, threshold, now)
	}

	if publisher != nil {
		if err := publisher.Publish(event); err != nil {
			log.Warnw("failed to publish stock level event", "part_id", p.ID(), "error", err)
		}
	}

	goroutine.SafeGo(log, "stock-level-notify", func() {
		if err := notifier.Notify(context.Background(), services.AudienceAdmin, ticketNumber, message); err != nil {
			log.Warnw("failed to deliver stock level notification", "part_id", p.ID(), "error", err)
		}
	})
}
