// Package rod provides a headless Chrome implementation of toto.PageSource
// built on go-rod.
package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of opened pages before the browser
// is replaced with a fresh instance.
const DefaultMaxPages = 50

// BrowserManager owns the Chrome process behind a PageSource and
// relaunches it after maxPages pages have been opened.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	opened   int
	maxPages int
	closed   bool
}

// NewBrowserManager launches a headless Chrome browser that is recycled
// after maxPages pages. Close must be called when the manager is no longer
// needed.
func NewBrowserManager(maxPages int) (*BrowserManager, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	bm := &BrowserManager{maxPages: maxPages}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Acquire returns the browser to open the next page in and counts the page
// against the recycling threshold. Returns an error after Close.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, fmt.Errorf("browser closed")
	}
	if bm.opened >= bm.maxPages {
		bm.recycle()
	}
	bm.opened++
	return bm.browser, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.shutdown()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch starts a new headless browser. Must be called with mu held or
// before the manager is shared.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown closes the browser and kills its process. Must be called with
// mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. If the new browser fails
// to launch the old one stays in use. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher

	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.opened = 0
}
