package history

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(3)
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Save(ctx, Record{Filename: name, Success: true}))
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "d", got[0].Filename)
	assert.Equal(t, "b", got[2].Filename)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())

	got, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].Filename)
}

func TestInMemoryStoreTruncatesText(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(10)
	require.NoError(t, s.Save(ctx, Record{Text: strings.Repeat("é", MaxStoredTextRunes+50)}))

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, []rune(got[0].Text), MaxStoredTextRunes)
}

func TestNewStoreDefaultsToInMemory(t *testing.T) {
	s, err := NewStore(context.Background(), "  ")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "in-memory", s.Mode())
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, Record{Filename: "tts_temp_1_abc.mp3", Text: "hello", Voice: "en-US-JennyNeural", Rate: 1, Volume: 0.8, FileSize: 42, Success: true}))
	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Text)
}

func TestRedact(t *testing.T) {
	out := Redact("Email me at sam@example.com or +1 (555) 123-9876 and use 4242 4242 4242 4242.")
	assert.Contains(t, out, "[email]")
	assert.Contains(t, out, "[phone]")
	assert.Contains(t, out, "[card]")
	assert.NotContains(t, out, "sam@example.com")
	assert.Equal(t, "nothing to hide", Redact("nothing to hide"))
}

func TestSaveRedactsText(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(10)
	require.NoError(t, s.Save(ctx, Record{Text: "call sam@example.com"}))

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "call [email]", got[0].Text)
}
