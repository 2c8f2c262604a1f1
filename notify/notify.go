// Package notify provides draw summary delivery orchestration.
// It coordinates extraction, formatting, duplicate suppression and
// delivery of the summary to one or more chats.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/toto"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many chats are sent to at once.
const DefaultConcurrency = 4

// Notifier extracts the draw summary and delivers it to chats.
type Notifier struct {
	Extractor Extractor
	Sender    toto.Sender

	// Deliveries records sent messages. Optional unless SkipDuplicates is set.
	Deliveries toto.DeliveryService

	ChatIDs        []string
	ParseMode      string
	SkipDuplicates bool
	Concurrency    int
	RetryDelays    []time.Duration
	Logger         toto.LogFunc
}

// Report holds the outcome of one delivery round, with chats listed in
// configuration order.
type Report struct {
	Message toto.Message
	Sent    []string
	Skipped []string
	Failed  []string
}

// Prepare extracts the summary and formats it into a message.
func (n *Notifier) Prepare(ctx context.Context) (toto.Message, error) {
	result, err := n.Extractor.Extract(ctx)
	if err != nil {
		return toto.Message{}, err
	}

	msg := toto.NewMessage(toto.Format(result))
	if n.ParseMode != "" {
		msg.ParseMode = n.ParseMode
	}
	return msg, nil
}

// Run prepares the message and delivers it to every chat.
func (n *Notifier) Run(ctx context.Context) (*Report, error) {
	msg, err := n.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	return n.Deliver(ctx, msg)
}

type chatOutcome int

const (
	outcomeSent chatOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// Deliver sends msg to every configured chat. All chats are attempted even
// when some fail; the returned error joins the failures.
func (n *Notifier) Deliver(ctx context.Context, msg toto.Message) (*Report, error) {
	if len(n.ChatIDs) == 0 {
		return nil, toto.Errorf(toto.EINVALID, "at least one chat ID required")
	}
	if n.SkipDuplicates && n.Deliveries == nil {
		return nil, toto.Errorf(toto.EINVALID, "skipping duplicates requires delivery history")
	}

	concurrency := n.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]chatOutcome, len(n.ChatIDs))
	errs := make([]error, len(n.ChatIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, chatID := range n.ChatIDs {
		g.Go(func() error {
			outcomes[i], errs[i] = n.deliverTo(gctx, chatID, msg)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Message: msg}
	for i, chatID := range n.ChatIDs {
		switch outcomes[i] {
		case outcomeSent:
			report.Sent = append(report.Sent, chatID)
		case outcomeSkipped:
			report.Skipped = append(report.Skipped, chatID)
		case outcomeFailed:
			report.Failed = append(report.Failed, chatID)
			errs[i] = fmt.Errorf("chat %s: %w", chatID, errs[i])
		}
	}

	return report, errors.Join(errs...)
}

// deliverTo sends msg to one chat and records it.
func (n *Notifier) deliverTo(ctx context.Context, chatID string, msg toto.Message) (chatOutcome, error) {
	msg.ChatID = chatID

	if n.SkipDuplicates {
		last, err := n.Deliveries.FindLastDelivery(ctx, chatID)
		switch {
		case err == nil && last.Text == msg.Text:
			return outcomeSkipped, nil
		case err != nil && toto.ErrorCode(err) != toto.ENOTFOUND:
			return outcomeFailed, err
		}
	}

	err := toto.Retry(ctx, "send to "+chatID, retryDelays(n.RetryDelays), n.Logger, func(ctx context.Context) error {
		return n.Sender.Send(ctx, msg)
	})
	if err != nil {
		return outcomeFailed, err
	}

	if n.Deliveries != nil {
		d := &toto.Delivery{ChatID: chatID, Text: msg.Text}
		if err := n.Deliveries.CreateDelivery(ctx, d); err != nil && n.Logger != nil {
			// The message is out; a lost record is logged, not failed.
			n.Logger("record delivery to %s: %v", chatID, err)
		}
	}

	return outcomeSent, nil
}
