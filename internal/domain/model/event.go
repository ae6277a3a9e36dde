package model

import "time"

// StatusEvent is emitted when an order enters a customer-visible milestone.
// Delivery is advisory and fire-and-forget.
type StatusEvent struct {
	OrderID     string
	OrderNumber string
	OwnerID     int64
	Stage       Stage
	Note        string
	OccurredAt  time.Time
}
