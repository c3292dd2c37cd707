package history

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9][0-9\-() ]{7,}[0-9]`)
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)
)

// Redact masks emails, card numbers and phone numbers in text kept in the log.
// Cards run before phones so a card number is not reported as a phone.
func Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, "[email]")
	text = cardPattern.ReplaceAllString(text, "[card]")
	return phonePattern.ReplaceAllString(text, "[phone]")
}

// prepare fills defaults and applies the storage rules shared by every Store.
func prepare(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Text = truncateText(Redact(r.Text))
	return r
}
