package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/toto"
)

// Ensure LoggingDeliveryService implements toto.DeliveryService.
var _ toto.DeliveryService = (*LoggingDeliveryService)(nil)

// LoggingDeliveryService wraps a DeliveryService with debug logging.
type LoggingDeliveryService struct {
	next   toto.DeliveryService
	logger *slog.Logger
}

// NewLoggingDeliveryService creates a new LoggingDeliveryService.
func NewLoggingDeliveryService(next toto.DeliveryService, logger *slog.Logger) *LoggingDeliveryService {
	return &LoggingDeliveryService{next: next, logger: logger}
}

// CreateDelivery delegates to the wrapped service and logs the new record.
func (s *LoggingDeliveryService) CreateDelivery(ctx context.Context, d *toto.Delivery) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record delivery",
			"chat", d.ChatID,
			"id", d.ID,
			"hash", d.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDelivery(ctx, d)
}

// FindLastDelivery delegates to the wrapped service. A chat without
// history is not logged as an error.
func (s *LoggingDeliveryService) FindLastDelivery(ctx context.Context, chatID string) (d *toto.Delivery, err error) {
	defer func(begin time.Time) {
		attrs := []any{"chat", chatID, "duration", time.Since(begin)}
		switch {
		case err == nil:
			attrs = append(attrs, "hash", d.ContentHash)
		case toto.ErrorCode(err) == toto.ENOTFOUND:
			attrs = append(attrs, "found", false)
		default:
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("last delivery", attrs...)
	}(time.Now())
	return s.next.FindLastDelivery(ctx, chatID)
}

// FindDeliveries delegates to the wrapped service and logs the count.
func (s *LoggingDeliveryService) FindDeliveries(ctx context.Context, filter toto.DeliveryFilter) (ds []*toto.Delivery, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find deliveries",
			"count", len(ds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDeliveries(ctx, filter)
}
