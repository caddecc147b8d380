package part

import (
	"fmt"
	"time"

	"servit/internal/domain/shared/events"
)

const (
	EventTypeStockReserved = "part.stock_reserved"
	EventTypeStockReleased = "part.stock_released"
	EventTypeStockAdjusted = "part.stock_adjusted"
	EventTypeLowStock      = "part.low_stock"
	EventTypeStockRestored = "part.stock_restored"
)

type StockReservedEvent struct {
	events.BaseEvent
	PartID       uint
	SerialNumber string
	Quantity     int
	TicketNumber string
}

func NewStockReservedEvent(partID uint, serialNumber string, qty int, ticketNumber string, occurredAt time.Time) StockReservedEvent {
	return StockReservedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("part-%d", partID),
			EventType:   EventTypeStockReserved,
			OccurredAt:  occurredAt,
		},
		PartID:       partID,
		SerialNumber: serialNumber,
		Quantity:     qty,
		TicketNumber: ticketNumber,
	}
}

type StockReleasedEvent struct {
	events.BaseEvent
	PartID       uint
	SerialNumber string
	Quantity     int
}

func NewStockReleasedEvent(partID uint, serialNumber string, qty int, occurredAt time.Time) StockReleasedEvent {
	return StockReleasedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("part-%d", partID),
			EventType:   EventTypeStockReleased,
			OccurredAt:  occurredAt,
		},
		PartID:       partID,
		SerialNumber: serialNumber,
		Quantity:     qty,
	}
}

type StockAdjustedEvent struct {
	events.BaseEvent
	PartID       uint
	SerialNumber string
	Delta        int
	NewStock     int
}

func NewStockAdjustedEvent(partID uint, serialNumber string, delta, newStock int, occurredAt time.Time) StockAdjustedEvent {
	return StockAdjustedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("part-%d", partID),
			EventType:   EventTypeStockAdjusted,
			OccurredAt:  occurredAt,
		},
		PartID:       partID,
		SerialNumber: serialNumber,
		Delta:        delta,
		NewStock:     newStock,
	}
}

// LowStockEvent fires when available stock crosses the threshold downward;
// StockRestoredEvent fires on the symmetric upward crossing.
type LowStockEvent struct {
	events.BaseEvent
	PartID         uint
	PartNumber     string
	AvailableStock int
	Threshold      int
}

func NewLowStockEvent(partID uint, partNumber string, available, threshold int, occurredAt time.Time) LowStockEvent {
	return LowStockEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("part-%d", partID),
			EventType:   EventTypeLowStock,
			OccurredAt:  occurredAt,
		},
		PartID:         partID,
		PartNumber:     partNumber,
		AvailableStock: available,
		Threshold:      threshold,
	}
}

type StockRestoredEvent struct {
	events.BaseEvent
	PartID         uint
	PartNumber     string
	AvailableStock int
	Threshold      int
}

func NewStockRestoredEvent(partID uint, partNumber string, available, threshold int, occurredAt time.Time) StockRestoredEvent {
	return StockRestoredEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("part-%d", partID),
			EventType:   EventTypeStockRestored,
			OccurredAt:  occurredAt,
		},
		PartID:         partID,
		PartNumber:     partNumber,
		AvailableStock: available,
		Threshold:      threshold,
	}
}
