package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// excerptLimit is the maximum number of visible characters in a derived
	// excerpt, before the ellipsis marker.
	excerptLimit = 150

	// ellipsisMarker is appended when the excerpt truncates the content.
	ellipsisMarker = "..."

	// wordsPerMinute is the assumed reading speed for ReadingTime.
	wordsPerMinute = 200
)

// stripPolicy removes all HTML, leaving only visible text. Shared and
// safe for concurrent use per the bluemonday documentation.
var stripPolicy = bluemonday.StrictPolicy()

// deriveExcerpt returns the first excerptLimit visible characters of the
// content, trimmed, with the ellipsis marker appended when the content was
// truncated. Truncation is not word-boundary aware.
func deriveExcerpt(contentText string) string {
	visible := html.UnescapeString(stripPolicy.Sanitize(contentText))
	visible = strings.TrimSpace(visible)

	runes := []rune(visible)
	if len(runes) <= excerptLimit {
		return visible
	}

	return strings.TrimSpace(string(runes[:excerptLimit])) + ellipsisMarker
}

// readingTime returns ceil(word count / wordsPerMinute) in minutes.
// Non-empty content always reads as at least one minute; empty content
// reads as zero.
func readingTime(contentText string) int {
	words := len(strings.Fields(contentText))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
