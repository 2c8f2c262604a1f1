package mock

import (
	"context"

	"github.com/fwojciec/toto"
)

// Compile-time interface verification.
var (
	_ toto.Region     = (*Region)(nil)
	_ toto.Page       = (*Page)(nil)
	_ toto.PageSource = (*PageSource)(nil)
)

// Region is a mock implementation of toto.Region.
type Region struct {
	FindFn func(ctx context.Context, selector string) (toto.Region, error)
	TextFn func(ctx context.Context) (string, error)
}

func (r *Region) Find(ctx context.Context, selector string) (toto.Region, error) {
	return r.FindFn(ctx, selector)
}

func (r *Region) Text(ctx context.Context) (string, error) {
	return r.TextFn(ctx)
}

// Page is a mock implementation of toto.Page.
type Page struct {
	Region
	CloseFn func() error
}

func (p *Page) Close() error {
	return p.CloseFn()
}

// PageSource is a mock implementation of toto.PageSource.
type PageSource struct {
	OpenFn  func(ctx context.Context, url string) (toto.Page, error)
	CloseFn func() error
}

func (s *PageSource) Open(ctx context.Context, url string) (toto.Page, error) {
	return s.OpenFn(ctx, url)
}

func (s *PageSource) Close() error {
	return s.CloseFn()
}

// TextRegion returns a Region with fixed text and no sub-regions.
func TextRegion(text string) *Region {
	return &Region{
		FindFn: func(ctx context.Context, selector string) (toto.Region, error) {
			return nil, toto.Errorf(toto.ENOTFOUND, "no region matches %q", selector)
		},
		TextFn: func(ctx context.Context) (string, error) {
			return text, nil
		},
	}
}
