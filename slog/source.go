package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/toto"
)

// Ensure LoggingPageSource implements toto.PageSource.
var _ toto.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource with logging.
type LoggingPageSource struct {
	next   toto.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next toto.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// Open logs the page load and delegates to the wrapped source.
func (s *LoggingPageSource) Open(ctx context.Context, url string) (page toto.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("open page",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Open(ctx, url)
}

// Close delegates to the wrapped source.
func (s *LoggingPageSource) Close() error {
	return s.next.Close()
}
