// Package goquery provides a static-HTML implementation of toto.PageSource
// for result pages that render without JavaScript.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toto"
)

// Ensure PageSource implements toto.PageSource at compile time.
var _ toto.PageSource = (*PageSource)(nil)

// PageSource opens pages by fetching their HTML and parsing it.
// No scripts run, so consent overlays never need dismissing and the page
// is settled as soon as it is parsed.
type PageSource struct {
	fetcher toto.Fetcher
}

// NewPageSource creates a PageSource that retrieves HTML with fetcher.
func NewPageSource(fetcher toto.Fetcher) *PageSource {
	return &PageSource{fetcher: fetcher}
}

// Open fetches and parses the page at url.
func (s *PageSource) Open(ctx context.Context, url string) (toto.Page, error) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewPage(html)
}

// Close releases the underlying fetcher.
func (s *PageSource) Close() error {
	return s.fetcher.Close()
}

// Ensure Page implements toto.Page at compile time.
var _ toto.Page = (*Page)(nil)

// Page is a parsed HTML document.
type Page struct {
	Region
}

// NewPage parses html into a Page.
func NewPage(html string) (*Page, error) {
	if strings.TrimSpace(html) == "" {
		return nil, toto.Errorf(toto.EINVALID, "empty HTML input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, toto.Errorf(toto.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{Region: Region{sel: doc.Selection}}, nil
}

// Close is a no-op; parsed documents hold no resources.
func (p *Page) Close() error {
	return nil
}

// Ensure Region implements toto.Region at compile time.
var _ toto.Region = (*Region)(nil)

// Region is a selection within a parsed document.
type Region struct {
	sel *goquery.Selection
}

// Find returns the first visible descendant matching selector.
// A static document never changes, so Find does not wait.
func (r *Region) Find(ctx context.Context, selector string) (toto.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, toto.Errorf(toto.ENOTFOUND, "region %q not visible: %v", selector, err)
	}

	var found *goquery.Selection
	r.sel.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if isHidden(s) {
			return true
		}
		found = s
		return false
	})
	if found == nil {
		return nil, toto.Errorf(toto.ENOTFOUND, "region %q not found", selector)
	}
	return &Region{sel: found}, nil
}

// Text returns the region's visible text with one line per block.
func (r *Region) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return VisibleText(r.sel), nil
}

// isHidden reports whether s or one of its ancestors is hidden through the
// hidden attribute, aria-hidden or an inline display:none style.
func isHidden(s *goquery.Selection) bool {
	for cur := s; cur.Length() > 0; cur = cur.Parent() {
		if _, ok := cur.Attr("hidden"); ok {
			return true
		}
		if v, _ := cur.Attr("aria-hidden"); v == "true" {
			return true
		}
		style, _ := cur.Attr("style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return true
		}
	}
	return false
}
