package toto

import (
	"strings"
	"unicode/utf8"
)

// Title is the first line of every formatted message.
const Title = "<b>TOTO Summary</b>"

// MaxRawLength caps the raw JSON shown when no field is recognized, keeping
// the message within chat message size limits.
const MaxRawLength = 3500

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the characters significant in chat HTML markup.
// Quotes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Format renders a result as a chat message in HTML markup.
//
// The title comes first, then one line each for the draw date, jackpot and
// numbers (with the additional number) when present. Field values are
// HTML-escaped. When no field is present the message shows the original
// input as indented JSON, truncated to MaxRawLength characters.
//
// Format never fails: values of an unexpected shape are rendered in their
// textual form instead.
func Format(r Result) string {
	lines := []string{Title}

	if v, ok := r.Get(FieldDrawDate); ok {
		lines = append(lines, "Date: "+EscapeHTML(v.Text()))
	}
	if v, ok := r.Get(FieldJackpot); ok {
		lines = append(lines, "Estimated Jackpot: "+EscapeHTML(v.Text()))
	}
	if v, ok := r.Get(FieldNumbers); ok {
		if numbers, ok := renderNumbers(v); ok {
			line := "Numbers: " + EscapeHTML(numbers)
			if bonus, ok := r.Get(FieldBonus); ok {
				line += " | Additional: " + EscapeHTML(bonus.Text())
			}
			lines = append(lines, line)
		}
	}

	if len(lines) == 1 {
		snippet := truncate(r.Source.Indent(), MaxRawLength)
		lines = append(lines,
			"Could not recognize fields. Raw JSON:",
			"<pre>"+EscapeHTML(snippet)+"</pre>",
		)
	}

	return strings.Join(lines, "\n")
}

// renderNumbers joins the elements of a numbers array, skipping nulls.
// An empty array renders nothing. If any element is itself an object or
// array the whole value is rendered as compact JSON instead; values that
// are not arrays use their textual form.
func renderNumbers(v *Node) (string, bool) {
	if v.Kind != KindArray {
		return v.Text(), true
	}
	if len(v.Items) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.IsNull() {
			continue
		}
		if item.Kind == KindObject || item.Kind == KindArray {
			return v.Text(), true
		}
		parts = append(parts, item.Text())
	}
	return strings.Join(parts, ", "), true
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
