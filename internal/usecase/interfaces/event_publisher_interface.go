package interfaces

import "context"

// Notification routing keys published on the durable topic exchange.
const (
	EventProposalSent     = "proposal.sent"
	EventProposalAccepted = "proposal.accepted"
	EventProposalExpired  = "proposal.expired"
	EventPaymentHeld      = "payment.held"
	EventPaymentReleased  = "payment.released"
)

// IEventPublisher publishes notification-worthy events. Publishing is
// fire-and-forget: a broker failure must never fail the financial operation
// that produced the event.
type IEventPublisher interface {
	Publish(ctx context.Context, routingKey string, body interface{}) error
	Close()
}
