package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/toto"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigationTimeout bounds loading a page until it has settled.
const DefaultNavigationTimeout = 60 * time.Second

// consentTimeout bounds each attempt at dismissing a consent overlay.
const consentTimeout = 1500 * time.Millisecond

// idleWindow is how long the network must stay quiet for the page to count
// as settled.
const idleWindow = 500 * time.Millisecond

// Ensure PageSource implements toto.PageSource at compile time.
var _ toto.PageSource = (*PageSource)(nil)

// PageSource opens pages in headless Chrome.
// PageSource is safe for concurrent use by multiple goroutines.
type PageSource struct {
	manager           *BrowserManager
	maxPages          int
	navigationTimeout time.Duration
}

// Option configures a PageSource.
type Option func(*PageSource)

// WithNavigationTimeout sets the timeout for loading a page.
// Defaults to DefaultNavigationTimeout if not specified.
func WithNavigationTimeout(d time.Duration) Option {
	return func(s *PageSource) {
		s.navigationTimeout = d
	}
}

// WithMaxPages sets how many pages are opened before the browser is
// relaunched. Defaults to DefaultMaxPages if not specified.
func WithMaxPages(n int) Option {
	return func(s *PageSource) {
		s.maxPages = n
	}
}

// NewPageSource launches a headless Chrome browser.
// Close must be called when the PageSource is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewPageSource(opts ...Option) (*PageSource, error) {
	s := &PageSource{
		maxPages:          DefaultMaxPages,
		navigationTimeout: DefaultNavigationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	manager, err := NewBrowserManager(s.maxPages)
	if err != nil {
		return nil, err
	}
	s.manager = manager
	return s, nil
}

// Open navigates to url, tries to accept a consent overlay and waits for
// network activity to settle.
func (s *PageSource) Open(ctx context.Context, url string) (toto.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := s.manager.Acquire()
	if err != nil {
		return nil, toto.Errorf(toto.EINVALID, "page source %s", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, toto.Errorf(toto.EUNAVAILABLE, "creating page: %v", err)
	}
	page = page.Context(ctx)

	if err := s.load(page, url); err != nil {
		_ = page.Close()
		return nil, err
	}

	return &Page{page: page}, nil
}

func (s *PageSource) load(page *rod.Page, url string) error {
	nav := page.Timeout(s.navigationTimeout)
	defer nav.CancelTimeout()

	if err := nav.Navigate(url); err != nil {
		return toto.Errorf(toto.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return toto.Errorf(toto.EUNAVAILABLE, "loading %s: %v", url, err)
	}

	waitIdle := nav.WaitRequestIdle(idleWindow, nil, nil, nil)
	dismissConsent(page)
	waitIdle()

	return nil
}

// dismissConsent clicks an "Accept" button if one shows up quickly.
// A missing overlay is not an error.
func dismissConsent(page *rod.Page) {
	attempts := []struct{ selector, pattern string }{
		{"button", `/^\s*Accept\s*$/i`},
		{"button, a, [role=button]", `/Accept All/i`},
	}
	for _, a := range attempts {
		p := page.Timeout(consentTimeout)
		el, err := p.ElementR(a.selector, a.pattern)
		if err == nil {
			err = el.Click(proto.InputMouseButtonLeft, 1)
		}
		p.CancelTimeout()
		if err == nil {
			return
		}
	}
}

// Close releases browser resources.
func (s *PageSource) Close() error {
	return s.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *PageSource) LauncherPID() int {
	return s.manager.LauncherPID()
}

// Ensure Page implements toto.Page at compile time.
var _ toto.Page = (*Page)(nil)

// Page is a tab opened by PageSource.
type Page struct {
	page *rod.Page
}

// Find waits for the first element matching selector to become visible.
func (p *Page) Find(ctx context.Context, selector string) (toto.Region, error) {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, notFound(selector, err)
	}
	return visible(el, selector)
}

// Text returns the rendered text of the document body.
func (p *Page) Text(ctx context.Context) (string, error) {
	body, err := p.page.Context(ctx).Element("body")
	if err != nil {
		return "", notFound("body", err)
	}
	return body.Text()
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

// Ensure Region implements toto.Region at compile time.
var _ toto.Region = (*Region)(nil)

// Region is an element of an opened page.
type Region struct {
	el *rod.Element
}

// Find waits for the first descendant matching selector to become visible.
func (r *Region) Find(ctx context.Context, selector string) (toto.Region, error) {
	el, err := r.el.Context(ctx).Element(selector)
	if err != nil {
		return nil, notFound(selector, err)
	}
	return visible(el, selector)
}

// Text returns the element's innerText.
func (r *Region) Text(ctx context.Context) (string, error) {
	return r.el.Context(ctx).Text()
}

func visible(el *rod.Element, selector string) (toto.Region, error) {
	if err := el.WaitVisible(); err != nil {
		return nil, notFound(selector, err)
	}
	return &Region{el: el}, nil
}

// notFound maps lookup failures caused by timeouts or missing elements to
// ENOTFOUND.
func notFound(selector string, err error) error {
	var notFoundErr *rod.ElementNotFoundError
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &notFoundErr) {
		return toto.Errorf(toto.ENOTFOUND, "region %q not visible: %v", selector, err)
	}
	return err
}
