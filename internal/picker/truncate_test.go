package picker

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Go Blog", "Go Blog"},
		{"sgr color", "\x1b[31mred\x1b[0m title", "red title"},
		{"cursor movement", "\x1b[2Aup", "up"},
		{"osc title", "\x1b]0;evil\x07page", "page"},
		{"invalid utf8", "ok\xffbad", "ok�bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.in))
		})
	}
}

func TestMiddleTruncate(t *testing.T) {
	t.Run("short string untouched", func(t *testing.T) {
		assert.Equal(t, "hello", MiddleTruncate("hello", 10))
	})

	t.Run("long string gets middle ellipsis", func(t *testing.T) {
		got := MiddleTruncate("https://example.com/very/long/path/to/a/page", 20)
		assert.Contains(t, got, "…")
		assert.LessOrEqual(t, runewidth.StringWidth(got), 20)
		assert.True(t, strings.HasPrefix(got, "https://"))
		assert.True(t, strings.HasSuffix(got, "page"))
	})

	t.Run("cjk width counts double", func(t *testing.T) {
		got := MiddleTruncate(strings.Repeat("日", 20), 11)
		assert.LessOrEqual(t, runewidth.StringWidth(got), 11)
		assert.Contains(t, got, "…")
	})

	t.Run("tiny width hard truncates", func(t *testing.T) {
		assert.Equal(t, "ab", MiddleTruncate("abcdef", 2))
	})

	t.Run("zero width", func(t *testing.T) {
		assert.Equal(t, "", MiddleTruncate("abcdef", 0))
	})
}
