package utils

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const PreviewLength = 200

var (
	stripPolicy   = newStripPolicy()
	contentPolicy = bluemonday.UGCPolicy()
)

func newStripPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	// Keeps words of adjacent block elements apart.
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// SanitizeContent keeps the markup a rich text editor produces (headings,
// lists, links, images) and drops scripts, handlers and other active content.
func SanitizeContent(s string) string {
	return contentPolicy.Sanitize(s)
}

// Preview returns the first PreviewLength characters of the text of an HTML
// fragment.
func Preview(s string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	return string([]rune(text)[:PreviewLength])
}
