package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/mock"
	"github.com/fwojciec/toto/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractFunc func(ctx context.Context) (toto.Result, error)

func (f extractFunc) Extract(ctx context.Context) (toto.Result, error) { return f(ctx) }

func jsonResult(t *testing.T, doc string) extractFunc {
	t.Helper()
	node, err := toto.ParseJSONString(doc)
	require.NoError(t, err)
	return func(context.Context) (toto.Result, error) {
		return toto.ExtractJSON(node), nil
	}
}

// recordingSender collects sent messages and is safe for concurrent use.
type recordingSender struct {
	mu   sync.Mutex
	sent []toto.Message
	fail map[string]error
}

func (s *recordingSender) Send(_ context.Context, msg toto.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[msg.ChatID]; err != nil {
		return err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) chats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.sent {
		out = append(out, m.ChatID)
	}
	return out
}

const drawJSON = `{"draw":{"drawDate":"Thu, 16 Oct 2025","estimatedJackpot":"$1,000,000","winningNumbers":[4,8,15,16,23,42],"additionalNumber":7}}`

const drawMessage = "<b>TOTO Summary</b>\nDate: Thu, 16 Oct 2025\nEstimated Jackpot: $1,000,000\nNumbers: 4, 8, 15, 16, 23, 42 | Additional: 7"

func TestNotifier_Prepare(t *testing.T) {
	t.Parallel()

	t.Run("formats the extracted result as HTML", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{Extractor: jsonResult(t, drawJSON)}

		msg, err := n.Prepare(context.Background())
		require.NoError(t, err)

		assert.Equal(t, drawMessage, msg.Text)
		assert.Equal(t, toto.ParseModeHTML, msg.ParseMode)
		assert.Empty(t, msg.ChatID)
	})

	t.Run("uses the configured parse mode", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{Extractor: jsonResult(t, drawJSON), ParseMode: "MarkdownV2"}

		msg, err := n.Prepare(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "MarkdownV2", msg.ParseMode)
	})

	t.Run("propagates extraction errors", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{Extractor: extractFunc(func(context.Context) (toto.Result, error) {
			return toto.Result{}, toto.Errorf(toto.ENOTFOUND, "results panel not found")
		})}

		_, err := n.Prepare(context.Background())
		require.Error(t, err)
		assert.Equal(t, toto.ENOTFOUND, toto.ErrorCode(err))
	})
}

func TestNotifier_Run(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every chat and records each delivery", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		var mu sync.Mutex
		var recorded []string
		n := &notify.Notifier{
			Extractor: jsonResult(t, drawJSON),
			Sender:    sender,
			Deliveries: &mock.DeliveryService{
				CreateDeliveryFn: func(_ context.Context, d *toto.Delivery) error {
					mu.Lock()
					defer mu.Unlock()
					recorded = append(recorded, d.ChatID)
					assert.Equal(t, drawMessage, d.Text)
					return nil
				},
			},
			ChatIDs:     []string{"1", "2", "3"},
			RetryDelays: []time.Duration{},
		}

		report, err := n.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"1", "2", "3"}, report.Sent)
		assert.Empty(t, report.Failed)
		assert.ElementsMatch(t, []string{"1", "2", "3"}, sender.chats())
		assert.ElementsMatch(t, []string{"1", "2", "3"}, recorded)
	})

	t.Run("skips chats whose last delivery had the same text", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		n := &notify.Notifier{
			Extractor: jsonResult(t, drawJSON),
			Sender:    sender,
			Deliveries: &mock.DeliveryService{
				FindLastDeliveryFn: func(_ context.Context, chatID string) (*toto.Delivery, error) {
					switch chatID {
					case "same":
						return &toto.Delivery{ChatID: chatID, Text: drawMessage}, nil
					case "changed":
						return &toto.Delivery{ChatID: chatID, Text: "older draw"}, nil
					}
					return nil, toto.Errorf(toto.ENOTFOUND, "no delivery for chat %q", chatID)
				},
				CreateDeliveryFn: func(context.Context, *toto.Delivery) error { return nil },
			},
			ChatIDs:        []string{"same", "changed", "new"},
			SkipDuplicates: true,
			RetryDelays:    []time.Duration{},
		}

		report, err := n.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"changed", "new"}, report.Sent)
		assert.Equal(t, []string{"same"}, report.Skipped)
		assert.ElementsMatch(t, []string{"changed", "new"}, sender.chats())
	})

	t.Run("attempts all chats and joins failures", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{fail: map[string]error{
			"bad": toto.Errorf(toto.EINVALID, "chat not found"),
		}}
		n := &notify.Notifier{
			Extractor:   jsonResult(t, drawJSON),
			Sender:      sender,
			ChatIDs:     []string{"good", "bad"},
			RetryDelays: []time.Duration{},
		}

		report, err := n.Run(context.Background())
		require.Error(t, err)

		assert.Equal(t, []string{"good"}, report.Sent)
		assert.Equal(t, []string{"bad"}, report.Failed)
		assert.Contains(t, err.Error(), "chat bad")
		assert.Equal(t, []string{"good"}, sender.chats())
	})

	t.Run("retries transient send failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		n := &notify.Notifier{
			Extractor: jsonResult(t, drawJSON),
			Sender: &mock.Sender{
				SendFn: func(context.Context, toto.Message) error {
					attempts++
					if attempts < 3 {
						return toto.Errorf(toto.EUNAVAILABLE, "HTTP 502")
					}
					return nil
				},
			},
			ChatIDs:     []string{"1"},
			RetryDelays: []time.Duration{0, 0, 0},
		}

		report, err := n.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, report.Sent)
		assert.Equal(t, 3, attempts)
	})

	t.Run("still reports sent when recording fails", func(t *testing.T) {
		t.Parallel()

		var logged []string
		n := &notify.Notifier{
			Extractor: jsonResult(t, drawJSON),
			Sender:    &recordingSender{},
			Deliveries: &mock.DeliveryService{
				CreateDeliveryFn: func(context.Context, *toto.Delivery) error {
					return errors.New("disk full")
				},
			},
			ChatIDs:     []string{"1"},
			RetryDelays: []time.Duration{},
			Logger: func(format string, args ...any) {
				logged = append(logged, format)
			},
		}

		report, err := n.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, report.Sent)
		assert.Len(t, logged, 1)
	})

	t.Run("requires a chat", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{Extractor: jsonResult(t, drawJSON), Sender: &recordingSender{}}

		_, err := n.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, toto.EINVALID, toto.ErrorCode(err))
	})

	t.Run("requires history to skip duplicates", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{
			Extractor:      jsonResult(t, drawJSON),
			Sender:         &recordingSender{},
			ChatIDs:        []string{"1"},
			SkipDuplicates: true,
		}

		_, err := n.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, toto.EINVALID, toto.ErrorCode(err))
	})
}
