package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/notify"
)

// notifier builds a Notifier for extractor from the delivery flags.
func (f *DeliveryFlags) notifier(deps *Dependencies, extractor notify.Extractor) *notify.Notifier {
	return &notify.Notifier{
		Extractor:      extractor,
		Sender:         deps.Sender,
		Deliveries:     deps.Deliveries,
		ChatIDs:        f.ChatIDs,
		ParseMode:      f.ParseMode,
		SkipDuplicates: f.SkipDuplicates,
		Concurrency:    f.Concurrency,
		Logger:         logFunc(deps),
	}
}

// deliver prints the message for a dry run, runs a single delivery, or
// keeps delivering on the --every interval.
func (f *DeliveryFlags) deliver(deps *Dependencies, n *notify.Notifier) error {
	if f.DryRun {
		msg, err := n.Prepare(deps.Ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, msg.Text)
		return nil
	}

	if f.Every > 0 {
		deps.Logger.Info("watching", "every", f.Every, "chats", len(f.ChatIDs))
		return n.Watch(deps.Ctx, f.Every, func(report *notify.Report, err error) {
			if err != nil {
				deps.Logger.Error("delivery round failed", "err", toto.ErrorMessage(err))
			}
			if report != nil {
				printReport(deps, report)
			}
		})
	}

	report, err := n.Run(deps.Ctx)
	if report != nil {
		printReport(deps, report)
	}
	return err
}

func printReport(deps *Dependencies, r *notify.Report) {
	if len(r.Sent) > 0 {
		fmt.Fprintf(deps.Stdout, "Sent to %s\n", strings.Join(r.Sent, ", "))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(deps.Stdout, "Unchanged, skipped %s\n", strings.Join(r.Skipped, ", "))
	}
	if len(r.Failed) > 0 {
		fmt.Fprintf(deps.Stdout, "Failed for %s\n", strings.Join(r.Failed, ", "))
	}
}

// logFunc adapts the structured logger for retry messages.
func logFunc(deps *Dependencies) toto.LogFunc {
	return func(format string, args ...any) {
		deps.Logger.Warn(fmt.Sprintf(format, args...))
	}
}
