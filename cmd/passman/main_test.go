package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTrimText(t *testing.T) {
	cases := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"0123456789ABCDEF", 10, "0123456..."},
		{"привет, это заметка", 10, "привет,..."},
		{strings.Repeat("é", 12), 10, strings.Repeat("é", 7) + "..."},
	}
	for _, c := range cases {
		got := trimText(c.text, c.maxLen)
		if got != c.want {
			t.Errorf("trimText(%q, %d) = %q; want %q", c.text, c.maxLen, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("trimText(%q, %d) produced invalid UTF-8", c.text, c.maxLen)
		}
	}
}
