package utils

import "strings"

// CleanToValidUTF8 strips invalid UTF-8 byte sequences from a string.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// searchBreakers are characters known to break the full-text phrase match.
var searchBreakers = strings.NewReplacer(
	".", "",
	",", "",
	"-", " ",
	"\"", "",
	"'", "",
)

// NormalizeForSearch strips punctuation that breaks exact or fuzzy matching
// and collapses surrounding whitespace.
func NormalizeForSearch(s string) string {
	return strings.Join(strings.Fields(searchBreakers.Replace(s)), " ")
}

// ContainsAnyFold reports whether text contains any of the tokens,
// case-insensitively.
func ContainsAnyFold(text string, tokens []string) bool {
	lower := strings.ToLower(text)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
