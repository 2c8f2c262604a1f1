package toto

import "strings"

// Field identifies one logical datum of a draw summary.
type Field string

// Recognized draw summary fields.
const (
	FieldJackpot  Field = "jackpot"
	FieldDrawDate Field = "drawDate"
	FieldNumbers  Field = "numbers"
	FieldBonus    Field = "bonus"
)

// Fields lists all recognized fields in display order of the formatter's
// lookup (jackpot, draw date, numbers, bonus).
var Fields = []Field{FieldJackpot, FieldDrawDate, FieldNumbers, FieldBonus}

// fieldAliases maps each field to the JSON keys accepted for it, most
// preferred first. Keys are compared case-insensitively.
var fieldAliases = map[Field][]string{
	FieldJackpot:  {"estimatedJackpot", "jackpot", "jackpotPrize"},
	FieldDrawDate: {"nextDrawDate", "drawDate", "date"},
	FieldNumbers:  {"winningNumbers", "numbers", "winningNum"},
	FieldBonus:    {"additionalNumber", "additional", "bonus", "supplementary"},
}

// Aliases returns the accepted key aliases for the field.
// Unknown fields have no aliases.
func (f Field) Aliases() []string {
	aliases := fieldAliases[f]
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// Matches reports whether key is one of the field's aliases, ignoring case.
func (f Field) Matches(key string) bool {
	key = strings.ToLower(key)
	for _, alias := range fieldAliases[f] {
		if strings.ToLower(alias) == key {
			return true
		}
	}
	return false
}
