package mock

import (
	"context"

	"github.com/fwojciec/toto"
)

var _ toto.DeliveryService = (*DeliveryService)(nil)

// DeliveryService is a mock implementation of toto.DeliveryService.
type DeliveryService struct {
	CreateDeliveryFn   func(ctx context.Context, d *toto.Delivery) error
	FindLastDeliveryFn func(ctx context.Context, chatID string) (*toto.Delivery, error)
	FindDeliveriesFn   func(ctx context.Context, filter toto.DeliveryFilter) ([]*toto.Delivery, error)
}

func (s *DeliveryService) CreateDelivery(ctx context.Context, d *toto.Delivery) error {
	return s.CreateDeliveryFn(ctx, d)
}

func (s *DeliveryService) FindLastDelivery(ctx context.Context, chatID string) (*toto.Delivery, error) {
	return s.FindLastDeliveryFn(ctx, chatID)
}

func (s *DeliveryService) FindDeliveries(ctx context.Context, filter toto.DeliveryFilter) ([]*toto.Delivery, error) {
	return s.FindDeliveriesFn(ctx, filter)
}
