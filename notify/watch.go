package notify

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RunFunc receives the outcome of each watch round.
type RunFunc func(report *Report, err error)

// Watch calls Run immediately and then once per interval until ctx is
// done. A failed round is passed to onRun and does not stop the loop.
// Rounds never overlap; a round that overruns the interval is followed
// by the next one straight away.
func (n *Notifier) Watch(ctx context.Context, every time.Duration, onRun RunFunc) error {
	if every <= 0 {
		report, err := n.Run(ctx)
		if onRun != nil {
			onRun(report, err)
		}
		return err
	}

	limiter := rate.NewLimiter(rate.Every(every), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			// Canceled while waiting is the normal way out.
			return nil
		}

		report, err := n.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if onRun != nil {
			onRun(report, err)
		}
	}
}
