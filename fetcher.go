package toto

import "context"

// Fetcher retrieves raw documents from URLs.
type Fetcher interface {
	// Fetch retrieves the body at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
