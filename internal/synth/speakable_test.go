package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeakable(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  plain text  ", "plain text"},
		{"# Title\n\nSome **bold** words.", "Title Some bold words."},
		{"See [the docs](https://x.y/z) now.", "See the docs now."},
		{"Visit https://example.com today", "Visit today"},
		{"Run `go test` first", "Run first"},
		{"before\n```\ncode block\n```\nafter", "before after"},
		{"Great job 🎉!", "Great job !"},
		{"either/or", "either/or"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Speakable(tc.in), "Speakable(%q)", tc.in)
	}
}
