package toto

import (
	"regexp"
	"strings"
)

// amountPattern matches an optional currency prefix, a number with
// thousands separators and decimals, and an optional million unit. The
// amount may start on the line after the label.
const amountPattern = `\s*((?:S\$|\$)?\s*\d[\d,]*(?:\.\d+)?(?:\s*(?:million|m)\b)?)`

// fieldPatterns holds the fallback expressions per field, most specific
// first. Each captures the value in its first group.
var fieldPatterns = map[Field][]*regexp.Regexp{
	FieldJackpot: {
		regexp.MustCompile(`(?i)Estimated\s*Jackpot[^\n]*?` + amountPattern),
		regexp.MustCompile(`(?i)Jackpot[^\n]*?` + amountPattern),
	},
	FieldDrawDate: {
		regexp.MustCompile(`(?i)\b((?:mon|fri|sun)(?:day)?\b[^\n]+|tue(?:sday)?\b[^\n]+|wed(?:nesday)?\b[^\n]+|thu(?:rsday)?\b[^\n]+|sat(?:urday)?\b[^\n]+)`),
	},
}

// ExtractText resolves a field from flattened page text by trying the
// field's patterns in order. The first capture of the first matching
// pattern is returned with whitespace runs collapsed to single spaces.
// Fields without patterns are never found.
func ExtractText(text string, field Field) (string, bool) {
	for _, re := range fieldPatterns[field] {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		return normalizeSpace(m[1]), true
	}
	return "", false
}

// normalizeSpace trims s and collapses internal whitespace runs.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
