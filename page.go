package toto

import (
	"context"
	"time"
)

// DefaultURL is the lottery results page scraped when no override is set.
const DefaultURL = "https://online.singaporepools.com/en/lottery"

// Region is an area of a rendered page that can be read or narrowed.
type Region interface {
	// Find returns the first visible sub-region matching the CSS selector.
	// It blocks until the sub-region is visible or ctx is done.
	// Returns ENOTFOUND if no such region appears.
	Find(ctx context.Context, selector string) (Region, error)

	// Text returns the visible text of the region, with line breaks
	// between block-level elements.
	Text(ctx context.Context) (string, error)
}

// Page is a rendered page. As a Region it spans the whole document.
type Page interface {
	Region

	// Close releases the page.
	Close() error
}

// PageSource opens rendered pages.
type PageSource interface {
	// Open navigates to url, dismisses any consent overlay on a best-effort
	// basis and waits for the page to settle before returning it.
	Open(ctx context.Context, url string) (Page, error)

	// Close releases resources held by the source.
	Close() error
}

// Layout describes where the draw summary lives on a results page.
type Layout struct {
	// Panel selects the region holding the game's results. The Panel
	// region's text is also the input of the pattern fallback.
	Panel string

	// Selectors maps fields to sub-regions of the panel.
	Selectors map[Field]string

	// Timeout bounds each visibility wait.
	Timeout time.Duration
}

// DefaultLayout returns the layout of the Singapore Pools TOTO panel.
func DefaultLayout() Layout {
	return Layout{
		Panel: ".sppl-panel:has(.logo--toto)",
		Selectors: map[Field]string{
			FieldJackpot:  ".slab--jackpot .slab__text--highlight",
			FieldDrawDate: ".lottery__draw-date",
		},
		Timeout: DefaultLocateTimeout,
	}
}

// pageFields lists the fields read from a page, in output order of the
// raw source object.
var pageFields = []Field{FieldJackpot, FieldDrawDate}

// ExtractPage resolves the draw summary from a rendered page. For each
// field it tries the layout's selector inside the panel first and falls
// back to the field's text patterns on the panel's full text.
//
// Returns ENOTFOUND if the panel itself cannot be found; individual fields
// that cannot be resolved are simply absent from the result.
func ExtractPage(ctx context.Context, page Region, layout Layout) (Result, error) {
	timeout := layout.Timeout
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	findCtx, cancel := context.WithTimeout(ctx, timeout)
	panel, err := page.Find(findCtx, layout.Panel)
	cancel()
	if err != nil {
		return Result{}, Errorf(ENOTFOUND, "results panel %q not found: %s", layout.Panel, ErrorMessage(err))
	}

	// Full text feeds the pattern fallback; read it lazily once.
	var fullText *string
	panelText := func() string {
		if fullText == nil {
			textCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			s, err := panel.Text(textCtx)
			if err != nil {
				s = ""
			}
			fullText = &s
		}
		return *fullText
	}

	result := Result{Fields: make(map[Field]*Node)}
	source := ObjectNode()

	for _, field := range pageFields {
		value, ok := LocateRegion(ctx, panel, layout.Selectors[field], timeout)
		// An empty jackpot highlight falls back; an empty draw date is kept.
		if !ok || (field == FieldJackpot && value == "") {
			value, ok = ExtractText(panelText(), field)
		}
		if field == FieldJackpot {
			value = normalizeSpace(value)
			ok = ok && value != ""
		}

		if ok {
			result.Fields[field] = StringNode(value)
			source.Members = append(source.Members, Member{Key: string(field), Value: StringNode(value)})
		} else {
			source.Members = append(source.Members, Member{Key: string(field), Value: NullNode()})
		}
	}

	result.Source = source
	return result, nil
}
