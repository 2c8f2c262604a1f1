package toto_test

import (
	"testing"

	"github.com/fwojciec/toto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_Jackpot(t *testing.T) {
	t.Parallel()

	t.Run("prefers the estimated jackpot phrase", func(t *testing.T) {
		t.Parallel()

		text := "Last Jackpot: $1,000,000\nGroup 1\nEstimated Jackpot: $8 million\nNext Draw"

		v, ok := toto.ExtractText(text, toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "$8 million", v)
	})

	t.Run("falls back to a bare jackpot phrase", func(t *testing.T) {
		t.Parallel()

		text := "TOTO\nNext Jackpot S$ 2,500,000 est.\nMon, 13 Oct 2025"

		v, ok := toto.ExtractText(text, toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "S$ 2,500,000", v)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("ESTIMATED JACKPOT: $5M", toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "$5M", v)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("Estimated Jackpot\t$8   million", toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "$8 million", v)
	})

	t.Run("keeps decimals", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("Estimated Jackpot: $1.5 million", toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "$1.5 million", v)
	})

	t.Run("accepts the amount on the next line", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("Estimated Jackpot\n$1,000,000 Est", toto.FieldJackpot)

		require.True(t, ok)
		assert.Equal(t, "$1,000,000", v)
	})

	t.Run("does not look past the next line", func(t *testing.T) {
		t.Parallel()

		_, ok := toto.ExtractText("Jackpot\nto be announced\n$8 million", toto.FieldJackpot)

		assert.False(t, ok)
	})

	t.Run("reports absence without an amount", func(t *testing.T) {
		t.Parallel()

		_, ok := toto.ExtractText("Estimated Jackpot: to be announced", toto.FieldJackpot)

		assert.False(t, ok)
	})
}

func TestExtractText_DrawDate(t *testing.T) {
	t.Parallel()

	t.Run("captures weekday and rest of line", func(t *testing.T) {
		t.Parallel()

		text := "Next Draw\nMon, 13 Oct 2025 , 6.30pm\nEstimated Jackpot"

		v, ok := toto.ExtractText(text, toto.FieldDrawDate)

		require.True(t, ok)
		assert.Equal(t, "Mon, 13 Oct 2025 , 6.30pm", v)
	})

	t.Run("accepts full weekday names", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("Thursday,   16 Oct 2025", toto.FieldDrawDate)

		require.True(t, ok)
		assert.Equal(t, "Thursday, 16 Oct 2025", v)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		v, ok := toto.ExtractText("draw on SAT 18 OCT", toto.FieldDrawDate)

		require.True(t, ok)
		assert.Equal(t, "SAT 18 OCT", v)
	})

	t.Run("ignores words that merely start with a weekday", func(t *testing.T) {
		t.Parallel()

		_, ok := toto.ExtractText("Sunshine Monitor", toto.FieldDrawDate)

		assert.False(t, ok)
	})
}

func TestExtractText_FieldsWithoutPatterns(t *testing.T) {
	t.Parallel()

	_, ok := toto.ExtractText("Winning Numbers 4 8 15 16 23 42", toto.FieldNumbers)
	assert.False(t, ok)

	_, ok = toto.ExtractText("Additional Number 7", toto.FieldBonus)
	assert.False(t, ok)
}
