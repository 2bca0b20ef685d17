package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var tagRe = regexp.MustCompile(`<.*?>`)

// Normalize converts v to its textual form and reduces it to lowercase
// letters and whitespace. Markup tags are removed before the character
// filter runs, so "<b>Go</b> Dev 2" becomes "go dev ".
func Normalize(v any) string {
	s := strings.ToLower(fmt.Sprint(v))
	s = tagRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || isSpace(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Lower folds s to lowercase without dropping any characters.
func Lower(s string) string {
	return strings.ToLower(s)
}

// isSpace also accepts the ASCII information separators U+001C..U+001F,
// which count as whitespace for the ingestion pipeline's text cleaning.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}
