package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// TestDisplayExcerpt verifies the excerpt fallback: an explicit excerpt
// wins, otherwise the content is truncated to 150 runes.
func TestDisplayExcerpt(t *testing.T) {
	long := strings.Repeat("word ", 100)

	tests := []struct {
		name    string
		excerpt string
		content string
		want    string
	}{
		{name: "explicit excerpt wins", excerpt: "summary", content: long, want: "summary"},
		{name: "short content returned whole", excerpt: "", content: "brief post", want: "brief post"},
		{name: "empty everything", excerpt: "", content: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Excerpt: tt.excerpt, Content: tt.content}
			if got := p.DisplayExcerpt(); got != tt.want {
				t.Errorf("DisplayExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("long content truncated with ellipsis", func(t *testing.T) {
		p := &Post{Content: long}
		got := p.DisplayExcerpt()
		if !strings.HasSuffix(got, "...") {
			t.Fatalf("DisplayExcerpt() = %q, want trailing ellipsis", got)
		}
		body := strings.TrimSuffix(got, "...")
		if n := utf8.RuneCountInString(body); n != 150 {
			t.Errorf("DisplayExcerpt() body length = %d runes, want 150", n)
		}
		if !strings.HasPrefix(long, body) {
			t.Errorf("DisplayExcerpt() = %q is not a prefix of the content", body)
		}
	})

	t.Run("multibyte content is not split mid-rune", func(t *testing.T) {
		p := &Post{Content: strings.Repeat("héllo wörld ", 20)}
		got := p.DisplayExcerpt()
		if !utf8.ValidString(got) {
			t.Errorf("DisplayExcerpt() produced invalid UTF-8: %q", got)
		}
	})
}
