package content

import "strings"

// Slugify derives a URL-safe slug from a title: lowercase, punctuation
// outside the allowed set stripped, whitespace runs collapsed to single
// hyphens. The allowed set is letters, digits, underscore, and hyphen.
func Slugify(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lowered))

	lastHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '-':
			// Collapse whitespace and hyphen runs into a single hyphen
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// Punctuation outside the allowed set is dropped
		}
	}

	return strings.TrimRight(b.String(), "-")
}
