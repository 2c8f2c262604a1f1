package main

import (
	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/notify"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	extractor := &notify.PageExtractor{
		Pages:  deps.Pages,
		URL:    c.URL,
		Layout: toto.DefaultLayout(),
		Logger: logFunc(deps),
	}

	return c.deliver(deps, c.notifier(deps, extractor))
}
