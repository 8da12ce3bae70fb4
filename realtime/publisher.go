package realtime

import "desidine-api/models"

// Publisher pushes order-status events to subscribed clients. Handlers
// receive it injected rather than reaching for process-wide state.
type Publisher interface {
	PublishOrderStatus(orderID string, status models.OrderStatus)
}

// NoopPublisher drops every event, for tests and one-off tooling.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderStatus(string, models.OrderStatus) {}
