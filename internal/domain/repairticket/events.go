package repairticket

import (
	"time"

	"servit/internal/domain/shared/events"
)

const (
	EventTypeTicketCreated       = "repairticket.created"
	EventTypeTicketStatusChanged = "repairticket.status_changed"
	EventTypeTicketCompleted     = "repairticket.completed"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketNumber string
	CustomerName string
	DeviceModel  string
}

func NewTicketCreatedEvent(ticketNumber, customerName, deviceModel string, occurredAt time.Time) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: ticketNumber,
			EventType:   EventTypeTicketCreated,
			OccurredAt:  occurredAt,
		},
		TicketNumber: ticketNumber,
		CustomerName: customerName,
		DeviceModel:  deviceModel,
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketNumber string
	FromStatus   string
	ToStatus     string
	Actor        string
}

func NewTicketStatusChangedEvent(ticketNumber, fromStatus, toStatus, actor string, occurredAt time.Time) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: ticketNumber,
			EventType:   EventTypeTicketStatusChanged,
			OccurredAt:  occurredAt,
		},
		TicketNumber: ticketNumber,
		FromStatus:   fromStatus,
		ToStatus:     toStatus,
		Actor:        actor,
	}
}

type TicketCompletedEvent struct {
	events.BaseEvent
	TicketNumber string
}

func NewTicketCompletedEvent(ticketNumber string, occurredAt time.Time) TicketCompletedEvent {
	return TicketCompletedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: ticketNumber,
			EventType:   EventTypeTicketCompleted,
			OccurredAt:  occurredAt,
		},
		TicketNumber: ticketNumber,
	}
}
