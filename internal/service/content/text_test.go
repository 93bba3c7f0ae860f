package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("short content passes through untruncated", func(t *testing.T) {
		t.Parallel()

		got := deriveExcerpt("A short post.")
		assert.Equal(t, "A short post.", got)
		assert.False(t, strings.HasSuffix(got, ellipsisMarker))
	})

	t.Run("long content truncates with marker", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 100)
		got := deriveExcerpt(long)

		assert.True(t, strings.HasSuffix(got, ellipsisMarker))
		// At most excerptLimit visible characters plus the marker.
		assert.LessOrEqual(t, len([]rune(got)), excerptLimit+len(ellipsisMarker))
	})

	t.Run("content at exactly the limit is not truncated", func(t *testing.T) {
		t.Parallel()

		exact := strings.Repeat("a", excerptLimit)
		got := deriveExcerpt(exact)
		assert.Equal(t, exact, got)
	})

	t.Run("HTML is stripped before measuring", func(t *testing.T) {
		t.Parallel()

		got := deriveExcerpt("<p>Hello <strong>world</strong></p>")
		assert.Equal(t, "Hello world", got)
	})

	t.Run("HTML entities are unescaped", func(t *testing.T) {
		t.Parallel()

		got := deriveExcerpt("Fish &amp; Chips")
		assert.Equal(t, "Fish & Chips", got)
	})

	t.Run("empty content yields empty excerpt", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", deriveExcerpt(""))
	})
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "empty content reads as zero",
			content: "",
			want:    0,
		},
		{
			name:    "whitespace only reads as zero",
			content: "   \n\t  ",
			want:    0,
		},
		{
			name:    "one word rounds up to a minute",
			content: "hello",
			want:    1,
		},
		{
			name:    "exactly one minute of words",
			content: strings.Repeat("word ", 200),
			want:    1,
		},
		{
			name:    "one word over a minute rounds up",
			content: strings.Repeat("word ", 201),
			want:    2,
		},
		{
			name:    "four hundred words read as two minutes",
			content: strings.Repeat("word ", 400),
			want:    2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, readingTime(tc.content))
		})
	}
}
