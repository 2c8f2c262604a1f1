package toto

import (
	"context"
	"time"
)

// Delivery records a message sent to a chat.
type Delivery struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chatId"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	SentAt      time.Time `json:"sentAt"`
}

// Validate returns an error if the delivery contains invalid fields.
func (d *Delivery) Validate() error {
	if d.ChatID == "" {
		return Errorf(EINVALID, "delivery chat ID required")
	}
	if d.Text == "" {
		return Errorf(EINVALID, "delivery text required")
	}
	return nil
}

// DeliveryService represents a service for recording sent messages.
type DeliveryService interface {
	// CreateDelivery records a sent message.
	// ID, ContentHash and SentAt are set by the service.
	CreateDelivery(ctx context.Context, d *Delivery) error

	// FindLastDelivery returns the most recent delivery to a chat.
	// Returns ENOTFOUND if nothing was delivered to the chat yet.
	FindLastDelivery(ctx context.Context, chatID string) (*Delivery, error)

	// FindDeliveries returns deliveries matching the filter, newest first.
	FindDeliveries(ctx context.Context, filter DeliveryFilter) ([]*Delivery, error)
}

// DeliveryFilter represents a filter for FindDeliveries.
type DeliveryFilter struct {
	ChatID *string

	Offset int
	Limit  int
}
