package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ent0n29/speechkit/internal/synth"
	"github.com/ent0n29/speechkit/internal/voices"
)

func TestSayToFilesSingleChunk(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hello.mp3")
	var buf bytes.Buffer
	engine := synth.NewMock()

	written, err := sayToFiles(context.Background(), engine, synth.Request{Text: "hello there", Voice: "en-US-GuyNeural", Rate: 1, Volume: 1}, out, 100, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{out}, written)
	assert.FileExists(t, out)
	assert.Contains(t, buf.String(), "hello.mp3")
	assert.Contains(t, buf.String(), "en-US-GuyNeural")
}

func TestSayToFilesSplitsLongText(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "long.mp3")
	engine := synth.NewMock()

	text := strings.TrimSpace(strings.Repeat("word ", 30))
	written, err := sayToFiles(context.Background(), engine, synth.Request{Text: text, Voice: "v"}, out, 50, &bytes.Buffer{})
	require.NoError(t, err)
	require.Greater(t, len(written), 1)
	assert.Equal(t, filepath.Join(dir, "long_001.mp3"), written[0])
	for _, p := range written {
		assert.FileExists(t, p)
	}
	for _, req := range engine.Requests() {
		assert.LessOrEqual(t, len([]rune(req.Text)), 50)
	}
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestSayToFilesRejectsEmptyText(t *testing.T) {
	_, err := sayToFiles(context.Background(), synth.NewMock(), synth.Request{Text: "  "}, filepath.Join(t.TempDir(), "x.mp3"), 10, &bytes.Buffer{})
	assert.ErrorIs(t, err, synth.ErrEmptyText)
}

func TestPrintVoicesFiltersAndMarksDefault(t *testing.T) {
	catalog, err := voices.New(voices.DefaultVoiceID, voices.Builtin())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printVoices(&buf, catalog, "en-US"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "en-US-JennyNeural *")
	assert.NotContains(t, out, "en-GB-")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "say", "voices", "cleanup"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestServeAcceptsNoBrowserFlag(t *testing.T) {
	cmd, _, err := newRootCommand().Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{"--no-browser", "--addr", ":0"}))

	noBrowser, err := cmd.Flags().GetBool("no-browser")
	require.NoError(t, err)
	assert.True(t, noBrowser)
}

func TestReadSayTextFromFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hello\n\nSee [docs](https://example.com)."), 0o644))

	text, err := readSayText(sayOptions{file: path, plain: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello See docs.", text)

	text, err = readSayText(sayOptions{}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a b", text)
}
