package mock

import (
	"context"

	"github.com/fwojciec/toto"
)

var _ toto.Sender = (*Sender)(nil)

// Sender is a mock implementation of toto.Sender.
type Sender struct {
	SendFn func(ctx context.Context, msg toto.Message) error
}

func (s *Sender) Send(ctx context.Context, msg toto.Message) error {
	return s.SendFn(ctx, msg)
}
