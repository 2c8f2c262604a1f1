package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Watch(t *testing.T) {
	t.Parallel()

	t.Run("repeats until canceled and survives failed rounds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		n := &notify.Notifier{
			Extractor: extractFunc(func(context.Context) (toto.Result, error) {
				calls++
				if calls == 2 {
					return toto.Result{}, toto.Errorf(toto.EUNAVAILABLE, "page down")
				}
				return toto.Result{}, nil
			}),
			Sender:      &recordingSender{},
			ChatIDs:     []string{"1"},
			RetryDelays: []time.Duration{},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var errs []error
		err := n.Watch(ctx, 5*time.Millisecond, func(_ *notify.Report, err error) {
			errs = append(errs, err)
			if len(errs) == 3 {
				cancel()
			}
		})

		require.NoError(t, err)
		require.Len(t, errs, 3)
		assert.NoError(t, errs[0])
		assert.Equal(t, toto.EUNAVAILABLE, toto.ErrorCode(errs[1]))
		assert.NoError(t, errs[2])
	})

	t.Run("runs once without an interval", func(t *testing.T) {
		t.Parallel()

		rounds := 0
		n := &notify.Notifier{
			Extractor: extractFunc(func(context.Context) (toto.Result, error) {
				return toto.Result{}, nil
			}),
			Sender:      &recordingSender{},
			ChatIDs:     []string{"1"},
			RetryDelays: []time.Duration{},
		}

		err := n.Watch(context.Background(), 0, func(*notify.Report, error) { rounds++ })
		require.NoError(t, err)
		assert.Equal(t, 1, rounds)
	})

	t.Run("returns when canceled between rounds", func(t *testing.T) {
		t.Parallel()

		n := &notify.Notifier{
			Extractor: extractFunc(func(context.Context) (toto.Result, error) {
				return toto.Result{}, nil
			}),
			Sender:      &recordingSender{},
			ChatIDs:     []string{"1"},
			RetryDelays: []time.Duration{},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		rounds := 0
		err := n.Watch(ctx, time.Hour, func(*notify.Report, error) { rounds++ })
		require.NoError(t, err)
		assert.Equal(t, 1, rounds)
	})
}
