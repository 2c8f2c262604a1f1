package notify

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/toto"
)

// Extractor produces a draw summary from some source.
type Extractor interface {
	Extract(ctx context.Context) (toto.Result, error)
}

// Ensure extractors implement Extractor at compile time.
var (
	_ Extractor = (*PageExtractor)(nil)
	_ Extractor = (*JSONExtractor)(nil)
)

// PageExtractor reads the summary from a results page.
type PageExtractor struct {
	Pages       toto.PageSource
	URL         string
	Layout      toto.Layout
	RetryDelays []time.Duration
	Logger      toto.LogFunc
}

// Extract opens the page, retrying failed loads, and resolves its fields.
func (e *PageExtractor) Extract(ctx context.Context) (toto.Result, error) {
	url := e.URL
	if url == "" {
		url = toto.DefaultURL
	}
	layout := e.Layout
	if layout.Panel == "" {
		layout = toto.DefaultLayout()
	}

	var page toto.Page
	err := toto.Retry(ctx, url, retryDelays(e.RetryDelays), e.Logger, func(ctx context.Context) error {
		p, err := e.Pages.Open(ctx, url)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return toto.Result{}, err
	}
	defer page.Close()

	return toto.ExtractPage(ctx, page, layout)
}

// JSONExtractor reads the summary from a JSON document.
//
// Source is a file path, "-" for Stdin, or an http(s) URL retrieved with
// Fetcher.
type JSONExtractor struct {
	Source      string
	Stdin       io.Reader
	Fetcher     toto.Fetcher
	RetryDelays []time.Duration
	Logger      toto.LogFunc
}

// Extract loads and parses the document and searches it for fields.
func (e *JSONExtractor) Extract(ctx context.Context) (toto.Result, error) {
	raw, err := e.read(ctx)
	if err != nil {
		return toto.Result{}, err
	}

	doc, err := toto.ParseJSONString(raw)
	if err != nil {
		return toto.Result{}, err
	}

	return toto.ExtractJSON(doc), nil
}

func (e *JSONExtractor) read(ctx context.Context) (string, error) {
	switch {
	case e.Source == "" || e.Source == "-":
		if e.Stdin == nil {
			return "", toto.Errorf(toto.EINVALID, "no JSON input")
		}
		b, err := io.ReadAll(e.Stdin)
		if err != nil {
			return "", toto.Errorf(toto.EINVALID, "read stdin: %v", err)
		}
		return string(b), nil

	case strings.HasPrefix(e.Source, "http://") || strings.HasPrefix(e.Source, "https://"):
		if e.Fetcher == nil {
			return "", toto.Errorf(toto.EINVALID, "no fetcher for %s", e.Source)
		}
		var body string
		err := toto.Retry(ctx, e.Source, retryDelays(e.RetryDelays), e.Logger, func(ctx context.Context) error {
			b, err := e.Fetcher.Fetch(ctx, e.Source)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
		return body, err

	default:
		b, err := os.ReadFile(e.Source)
		if os.IsNotExist(err) {
			return "", toto.Errorf(toto.ENOTFOUND, "JSON file %q not found", e.Source)
		} else if err != nil {
			return "", toto.Errorf(toto.EINVALID, "read %s: %v", e.Source, err)
		}
		return string(b), nil
	}
}

func retryDelays(delays []time.Duration) []time.Duration {
	if delays == nil {
		return toto.DefaultRetryDelays()
	}
	return delays
}
