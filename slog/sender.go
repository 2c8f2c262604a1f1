package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/toto"
)

// Ensure LoggingSender implements toto.Sender.
var _ toto.Sender = (*LoggingSender)(nil)

// LoggingSender wraps a Sender with logging. Message text is not logged,
// only its length.
type LoggingSender struct {
	next   toto.Sender
	logger *slog.Logger
}

// NewLoggingSender creates a new LoggingSender.
func NewLoggingSender(next toto.Sender, logger *slog.Logger) *LoggingSender {
	return &LoggingSender{next: next, logger: logger}
}

// Send delegates to the wrapped sender and logs the outcome.
func (s *LoggingSender) Send(ctx context.Context, msg toto.Message) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("send message",
			"chat", msg.ChatID,
			"chars", utf8.RuneCountInString(msg.Text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Send(ctx, msg)
}
