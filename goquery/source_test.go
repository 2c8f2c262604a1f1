package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/goquery"
	"github.com/fwojciec/toto/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html>
<head><title>Lottery</title><style>.x { color: red }</style></head>
<body>
  <div class="sppl-panel">
    <div class="logo--4d"></div>
    <div class="lottery__draw-date">Wed, 14 Jan 2026</div>
  </div>
  <div class="sppl-panel">
    <div class="logo--toto"></div>
    <script>var jackpot = "$9";</script>
    <div class="lottery__draw-date" style="display: none">Sun, 01 Jan 2023</div>
    <div class="lottery__draw-date">Thu, 15 Jan 2026 , 6.30pm</div>
    <div class="slab--jackpot">
      <span>Estimated Jackpot</span>
      <span class="slab__text--highlight">$3,200,000   Est</span>
    </div>
  </div>
</body>
</html>`

func TestPage_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("extracts fields from the TOTO panel", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(resultsPage)
		require.NoError(t, err)

		result, err := toto.ExtractPage(context.Background(), page, toto.DefaultLayout())
		require.NoError(t, err)

		date, ok := result.Get(toto.FieldDrawDate)
		require.True(t, ok)
		assert.Equal(t, "Thu, 15 Jan 2026 , 6.30pm", date.Text())

		jackpot, ok := result.Get(toto.FieldJackpot)
		require.True(t, ok)
		assert.Equal(t, "$3,200,000 Est", jackpot.Text())
	})

	t.Run("falls back to panel text when a selector misses", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(`<div class="sppl-panel"><i class="logo--toto"></i>
			<p>Next Draw</p><p>Mon, 19 Jan 2026 , 6.30pm</p>
			<p>Estimated Jackpot</p><p>$1,000,000 Est</p></div>`)
		require.NoError(t, err)

		result, err := toto.ExtractPage(context.Background(), page, toto.DefaultLayout())
		require.NoError(t, err)

		date, ok := result.Get(toto.FieldDrawDate)
		require.True(t, ok)
		assert.Equal(t, "Mon, 19 Jan 2026 , 6.30pm", date.Text())

		jackpot, ok := result.Get(toto.FieldJackpot)
		require.True(t, ok)
		assert.Equal(t, "$1,000,000", jackpot.Text())
	})

	t.Run("reports a missing panel as not found", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(`<html><body><p>Maintenance</p></body></html>`)
		require.NoError(t, err)

		_, err = toto.ExtractPage(context.Background(), page, toto.DefaultLayout())
		require.Error(t, err)
		assert.Equal(t, toto.ENOTFOUND, toto.ErrorCode(err))
	})
}

func TestRegion_Find(t *testing.T) {
	t.Parallel()

	t.Run("skips hidden matches", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(`<p hidden>one</p><div aria-hidden="true"><p>two</p></div><p>three</p>`)
		require.NoError(t, err)

		region, err := page.Find(context.Background(), "p")
		require.NoError(t, err)

		text, err := region.Text(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "three", text)
	})

	t.Run("returns ENOTFOUND when nothing matches", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(`<p>only</p>`)
		require.NoError(t, err)

		_, err = page.Find(context.Background(), ".missing")
		require.Error(t, err)
		assert.Equal(t, toto.ENOTFOUND, toto.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for a canceled context", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPage(`<p>only</p>`)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = page.Find(ctx, "p")
		require.Error(t, err)
		assert.Equal(t, toto.ENOTFOUND, toto.ErrorCode(err))
	})
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewPage("   ")
	require.Error(t, err)
	assert.Equal(t, toto.EINVALID, toto.ErrorCode(err))
}

func TestVisibleText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "breaks lines at block elements",
			html: `<div><h2>Next Draw</h2><p>Thu,   15 Jan</p></div>`,
			want: "Next Draw\nThu, 15 Jan",
		},
		{
			name: "keeps inline elements on one line",
			html: `<p><b>Estimated</b> <i>Jackpot</i></p>`,
			want: "Estimated Jackpot",
		},
		{
			name: "breaks lines at br",
			html: `<p>line one<br>line two</p>`,
			want: "line one\nline two",
		},
		{
			name: "skips scripts, styles and hidden elements",
			html: `<div><script>x()</script><style>p{}</style><span hidden>secret</span>shown</div>`,
			want: "shown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := goquery.NewPage(tt.html)
			require.NoError(t, err)

			text, err := page.Text(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestPageSource(t *testing.T) {
	t.Parallel()

	t.Run("opens pages fetched by the fetcher", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return resultsPage, nil
			},
		}
		source := goquery.NewPageSource(fetcher)

		page, err := source.Open(context.Background(), "https://example.com/lottery")
		require.NoError(t, err)
		defer page.Close()

		assert.Equal(t, "https://example.com/lottery", fetched)
		_, err = page.Find(context.Background(), ".logo--toto")
		require.NoError(t, err)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("connection refused")
		source := goquery.NewPageSource(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", fetchErr
			},
		})

		_, err := source.Open(context.Background(), "https://example.com")
		require.ErrorIs(t, err, fetchErr)
	})

	t.Run("closes the fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		source := goquery.NewPageSource(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		})

		require.NoError(t, source.Close())
		assert.True(t, closed)
	})
}
