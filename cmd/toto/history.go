package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/toto"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := toto.DeliveryFilter{Limit: c.Limit}
	if c.Chat != "" {
		filter.ChatID = &c.Chat
	}

	ds, err := deps.Deliveries.FindDeliveries(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(ds) == 0 {
		fmt.Fprintln(deps.Stdout, "No deliveries found.")
		return nil
	}

	for _, d := range ds {
		text := d.Text
		if !c.Full {
			text = firstLine(strings.TrimPrefix(text, toto.Title+"\n"))
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", d.SentAt.Local().Format(time.DateTime), d.ChatID, d.ContentHash, text)
	}

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
