package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"mixed case and punctuation", "Go, Gin & GORM!", "go-gin-gorm"},
		{"diacritics stripped", "Café au Lait", "cafe-au-lait"},
		{"collapses whitespace", "  spaced   out\ttitle ", "spaced-out-title"},
		{"keeps existing hyphens", "already-slugged", "already-slugged"},
		{"collapses hyphen runs", "a -- b", "a-b"},
		{"numbers preserved", "Top 10 Tips 2024", "top-10-tips-2024"},
		{"cjk falls back", "你好世界", "article"},
		{"empty falls back", "   ", "article"},
		{"symbols only fall back", "!!!???", "article"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.input); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
