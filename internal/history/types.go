// Package history keeps a log of synthesis attempts for the /history endpoint.
package history

import (
	"context"
	"time"
	"unicode/utf8"
)

// MaxStoredTextRunes bounds how much of the request text is kept per record.
const MaxStoredTextRunes = 200

// Record is one synthesis attempt, successful or not.
type Record struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename,omitempty"`
	Text      string    `json:"text"`
	Voice     string    `json:"voice"`
	Rate      float64   `json:"rate"`
	Volume    float64   `json:"volume"`
	FileSize  int64     `json:"file_size"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists and retrieves synthesis records.
type Store interface {
	Save(ctx context.Context, record Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	Mode() string
	Close() error
}

func truncateText(s string) string {
	if utf8.RuneCountInString(s) <= MaxStoredTextRunes {
		return s
	}
	return string([]rune(s)[:MaxStoredTextRunes])
}
