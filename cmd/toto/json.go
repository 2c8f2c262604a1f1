package main

import "github.com/fwojciec/toto/notify"

// Run executes the json command.
func (c *JSONCmd) Run(deps *Dependencies) error {
	extractor := &notify.JSONExtractor{
		Source:  c.Source,
		Stdin:   deps.Stdin,
		Fetcher: deps.Fetcher,
		Logger:  logFunc(deps),
	}

	return c.deliver(deps, c.notifier(deps, extractor))
}
