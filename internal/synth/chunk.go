package synth

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkRunes is the chunk size used when a long text is split for
// several synthesis calls.
const DefaultChunkRunes = 1000

// Chunk splits text into pieces of at most width runes, breaking on
// whitespace. A single word longer than width is hard-split.
func Chunk(text string, width int) []string {
	if width <= 0 {
		width = DefaultChunkRunes
	}
	words := strings.Fields(text)
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			flush()
			r := []rune(w)
			chunks = append(chunks, string(r[:width]))
			w = string(r[width:])
		}
		n := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+n > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	flush()
	return chunks
}
