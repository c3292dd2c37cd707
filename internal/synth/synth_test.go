package synth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEdge installs a shell script standing in for edge-tts and returns its path.
func fakeEdge(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "edge-tts")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// writesMedia copies every argument into the --write-media file.
const writesMedia = `out=""
for a in "$@"; do
  case "$a" in
    --write-media=*) out="${a#--write-media=}" ;;
  esac
done
printf '%s\n' "$@" > "$out"`

// parsesLikeArgparse rejects a separate flag value that starts with "-",
// as the edge-tts option parser does.
const parsesLikeArgparse = `out=""
while [ $# -gt 0 ]; do
  case "$1" in
    --voice|--text|-t|--file|-f|--rate|--volume|--pitch|--write-media)
      case "$2" in
        ""|-*) echo "error: argument $1: expected one argument" >&2; exit 2 ;;
      esac
      if [ "$1" = "--write-media" ]; then out="$2"; fi
      shift 2 ;;
    --write-media=*) out="${1#--write-media=}"; shift ;;
    --voice=*|--text=*|--file=*|--rate=*|--volume=*|--pitch=*) shift ;;
    *) echo "error: unrecognized arguments: $1" >&2; exit 2 ;;
  esac
done
if [ -z "$out" ]; then echo "error: no output file" >&2; exit 2; fi
printf 'ID3' > "$out"`

func TestProsodyPercent(t *testing.T) {
	cases := map[float64]string{
		1.0:  "+0%",
		1.5:  "+50%",
		0.5:  "-50%",
		0.8:  "-20%",
		1.2:  "+20%",
		2.0:  "+100%",
		0:    "+0%",
		-1:   "+0%",
		0.01: "-99%",
		10:   "+900%",
		50:   "+900%",
		1e18: "+900%",
	}
	for in, want := range cases {
		assert.Equal(t, want, ProsodyPercent(in), "ProsodyPercent(%v)", in)
	}
}

func TestEdgeTTSPassesVoiceAndProsody(t *testing.T) {
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, writesMedia), Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.mp3")
	err = e.Synthesize(context.Background(), Request{Text: "hello world", Voice: "en-GB-RyanNeural", Rate: 1.5, Volume: 0.8}, dest)
	require.NoError(t, err)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	args := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Equal(t, []string{
		"--voice=en-GB-RyanNeural",
		"--text=hello world",
		"--rate=+50%",
		"--volume=-20%",
		"--write-media=" + dest,
	}, args)
}

func TestEdgeTTSNegativeValuesSurviveOptionParsing(t *testing.T) {
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, parsesLikeArgparse), Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)

	cases := []Request{
		{Text: "hello world", Voice: "en-US-JennyNeural", Rate: 1.0, Volume: 0.8},
		{Text: "slow", Voice: "en-US-JennyNeural", Rate: 0.5, Volume: 1.0},
		{Text: "-hello", Voice: "en-US-JennyNeural", Rate: 1.0, Volume: 1.0},
	}
	for _, req := range cases {
		dest := filepath.Join(t.TempDir(), "out.mp3")
		require.NoError(t, e.Synthesize(context.Background(), req, dest), "text=%q rate=%v volume=%v", req.Text, req.Rate, req.Volume)
		assert.FileExists(t, dest)
	}
}

func TestEdgeTTSReportsEngineDiagnostics(t *testing.T) {
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, `echo "No audio was received" >&2; exit 1`)}, nil)
	require.NoError(t, err)

	err = e.Synthesize(context.Background(), Request{Text: "hi", Voice: "x"}, filepath.Join(t.TempDir(), "o.mp3"))
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ReasonEngineFailed, engErr.Reason)
	assert.Equal(t, "No audio was received", engErr.Detail)
}

func TestEdgeTTSMissingOutput(t *testing.T) {
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, `exit 0`)}, nil)
	require.NoError(t, err)

	err = e.Synthesize(context.Background(), Request{Text: "hi", Voice: "x"}, filepath.Join(t.TempDir(), "o.mp3"))
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ReasonNoOutput, engErr.Reason)
}

func TestEdgeTTSTimeout(t *testing.T) {
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, `sleep 5`), Timeout: 100 * time.Millisecond}, nil)
	require.NoError(t, err)

	start := time.Now()
	err = e.Synthesize(context.Background(), Request{Text: "hi", Voice: "x"}, filepath.Join(t.TempDir(), "o.mp3"))
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ReasonTimeout, engErr.Reason)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestEdgeTTSRejectsEmptyTextWithoutRunning(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")
	e, err := NewEdgeTTS(EdgeConfig{Binary: fakeEdge(t, "touch "+marker)}, nil)
	require.NoError(t, err)

	err = e.Synthesize(context.Background(), Request{Text: "  \n", Voice: "x"}, filepath.Join(t.TempDir(), "o.mp3"))
	require.ErrorIs(t, err, ErrEmptyText)
	assert.NoFileExists(t, marker)
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine("edge", EdgeConfig{Binary: "definitely-not-installed-edge-tts"}, nil)
	require.True(t, IsNotAvailable(err), "err = %v", err)

	eng, err := NewEngine("mock", EdgeConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", eng.Name())

	_, err = NewEngine("festival", EdgeConfig{}, nil)
	require.Error(t, err)
	assert.False(t, IsNotAvailable(err))
}

func TestMockWritesMPEGPayload(t *testing.T) {
	m := NewMock()
	dest := filepath.Join(t.TempDir(), "o.mp3")
	require.NoError(t, m.Synthesize(context.Background(), Request{Text: "hi", Voice: "v", Rate: 1, Volume: 1}, dest))

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, mpegFrameHeader, b[:4])
	require.Len(t, m.Requests(), 1)

	m.Fail = &EngineError{Reason: ReasonEngineFailed, Detail: "boom"}
	err = m.Synthesize(context.Background(), Request{Text: "hi"}, dest)
	assert.True(t, errors.As(err, new(*EngineError)))
}

func TestChunk(t *testing.T) {
	assert.Nil(t, Chunk("   ", 10))
	assert.Equal(t, []string{"hello world"}, Chunk("hello   world", 20))
	assert.Equal(t, []string{"aaa bbb", "ccc"}, Chunk("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcd", "ef x"}, Chunk("abcdef x", 4))

	long := strings.Repeat("word ", 500)
	for _, c := range Chunk(long, DefaultChunkRunes) {
		assert.LessOrEqual(t, len([]rune(c)), DefaultChunkRunes)
	}
}
