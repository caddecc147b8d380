package quotation

import (
	"time"

	"servit/internal/domain/shared/events"
)

const (
	EventTypeQuotationCreated  = "quotation.created"
	EventTypeQuotationApproved = "quotation.approved"
	EventTypeQuotationDenied   = "quotation.denied"
	EventTypeQuotationExpired  = "quotation.expired"
)

type QuotationCreatedEvent struct {
	events.BaseEvent
	QuotationID  string
	TicketNumber string
}

func NewQuotationCreatedEvent(quotationID, ticketNumber string, occurredAt time.Time) QuotationCreatedEvent {
	return QuotationCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: quotationID,
			EventType:   EventTypeQuotationCreated,
			OccurredAt:  occurredAt,
		},
		QuotationID:  quotationID,
		TicketNumber: ticketNumber,
	}
}

type QuotationApprovedEvent struct {
	events.BaseEvent
	QuotationID    string
	TicketNumber   string
	SelectedPartID uint
	ByOverride     bool
}

func NewQuotationApprovedEvent(quotationID, ticketNumber string, selectedPartID uint, byOverride bool, occurredAt time.Time) QuotationApprovedEvent {
	return QuotationApprovedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: quotationID,
			EventType:   EventTypeQuotationApproved,
			OccurredAt:  occurredAt,
		},
		QuotationID:    quotationID,
		TicketNumber:   ticketNumber,
		SelectedPartID: selectedPartID,
		ByOverride:     byOverride,
	}
}

type QuotationDeniedEvent struct {
	events.BaseEvent
	QuotationID  string
	TicketNumber string
}

func NewQuotationDeniedEvent(quotationID, ticketNumber string, occurredAt time.Time) QuotationDeniedEvent {
	return QuotationDeniedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: quotationID,
			EventType:   EventTypeQuotationDenied,
			OccurredAt:  occurredAt,
		},
		QuotationID:  quotationID,
		TicketNumber: ticketNumber,
	}
}

type QuotationExpiredEvent struct {
	events.BaseEvent
	QuotationID  string
	TicketNumber string
}

func NewQuotationExpiredEvent(quotationID, ticketNumber string, occurredAt time.Time) QuotationExpiredEvent {
	return QuotationExpiredEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: quotationID,
			EventType:   EventTypeQuotationExpired,
			OccurredAt:  occurredAt,
		},
		QuotationID:  quotationID,
		TicketNumber: ticketNumber,
	}
}
