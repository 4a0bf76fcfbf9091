package main

import (
	"regexp"
	"strings"
)

// maxTitleLen caps sanitized titles before they reach the store.
const maxTitleLen = 255

var reTitleJunk = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// SanitizeTitle strips everything but word characters, whitespace and
// hyphens from a user-supplied title, trims surrounding whitespace and caps
// the result at maxTitleLen runes. Titles are cleaned here, at the
// presentation layer, before any store call.
func SanitizeTitle(title string) string {
	cleaned := reTitleJunk.ReplaceAllString(strings.TrimSpace(title), "")
	runes := []rune(cleaned)
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return strings.TrimSpace(string(runes))
}
