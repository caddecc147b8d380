package services

import "context"

// Audience identifies who a notification is addressed to.
type Audience string

const (
	AudienceCustomer   Audience = "customer"
	AudienceTechnician Audience = "technician"
	AudienceAdmin      Audience = "admin"
	AudienceSystem     Audience = "system"
)

// NotificationGateway delivers human-readable messages about a ticket to an
// audience. Delivery is best-effort: callers invoke it after their state
// change has committed and never roll back on a delivery failure.
type NotificationGateway interface {
	Notify(ctx context.Context, audience Audience, ticketNumber string, message string) error
}
