// Package voices holds the immutable catalog of neural voices offered to clients.
package voices

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultVoiceID is used when no default is configured.
const DefaultVoiceID = "en-US-JennyNeural"

// Voice describes one synthesis voice.
type Voice struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Language string `json:"language" toml:"language"`
	Gender   string `json:"gender" toml:"gender"`
	Style    string `json:"style" toml:"style"`
}

// Lang returns the locale tag encoded in the voice ID, e.g. "en-US".
func (v Voice) Lang() string {
	parts := strings.SplitN(v.ID, "-", 3)
	if len(parts) < 2 {
		return v.ID
	}
	return parts[0] + "-" + parts[1]
}

// DisplayName is the label shown by the web page, e.g. "Jenny (US) - Friendly Female".
func (v Voice) DisplayName() string {
	region := v.Lang()
	if i := strings.IndexByte(region, '-'); i >= 0 {
		region = region[i+1:]
	}
	if region == "GB" {
		region = "UK"
	}
	return strings.TrimSpace(fmt.Sprintf("%s (%s) - %s %s", v.Name, region, v.Style, v.Gender))
}

// Catalog is safe for concurrent use; it is never mutated after construction.
type Catalog struct {
	voices    []Voice
	byID      map[string]int
	defaultID string
}

// New builds a catalog from entries. Later entries replace earlier ones with
// the same ID while keeping the original position.
func New(defaultID string, entries ...[]Voice) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int)}
	for _, list := range entries {
		for _, v := range list {
			v.ID = strings.TrimSpace(v.ID)
			if v.ID == "" {
				return nil, fmt.Errorf("voice entry %q has empty id", v.Name)
			}
			if i, ok := c.byID[v.ID]; ok {
				c.voices[i] = v
				continue
			}
			c.byID[v.ID] = len(c.voices)
			c.voices = append(c.voices, v)
		}
	}

	defaultID = strings.TrimSpace(defaultID)
	if defaultID == "" {
		defaultID = DefaultVoiceID
	}
	if _, ok := c.byID[defaultID]; !ok {
		return nil, fmt.Errorf("default voice %q is not in the catalog", defaultID)
	}
	c.defaultID = defaultID
	return c, nil
}

// Load builds the catalog from the built-in table plus an optional TOML overlay file.
func Load(defaultID, overlayPath string) (*Catalog, error) {
	if strings.TrimSpace(overlayPath) == "" {
		return New(defaultID, Builtin())
	}
	overlay, err := ReadOverlay(overlayPath)
	if err != nil {
		return nil, err
	}
	return New(defaultID, Builtin(), overlay)
}

type overlayFile struct {
	Voice []Voice `toml:"voice"`
}

// ReadOverlay parses a TOML file of [[voice]] tables.
func ReadOverlay(path string) ([]Voice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read voices file: %w", err)
	}
	var f overlayFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse voices file %s: %w", path, err)
	}
	return f.Voice, nil
}

// Lookup returns the voice with id, or the default voice when id is unknown.
func (c *Catalog) Lookup(id string) Voice {
	if i, ok := c.byID[strings.TrimSpace(id)]; ok {
		return c.voices[i]
	}
	return c.voices[c.byID[c.defaultID]]
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[strings.TrimSpace(id)]
	return ok
}

func (c *Catalog) DefaultID() string { return c.defaultID }

// List returns a copy of all voices in catalog order.
func (c *Catalog) List() []Voice {
	out := make([]Voice, len(c.voices))
	copy(out, c.voices)
	return out
}

// ByLanguage returns voices whose ID starts with prefix, e.g. "en" or "en-GB".
func (c *Catalog) ByLanguage(prefix string) []Voice {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := make([]Voice, 0, len(c.voices))
	for _, v := range c.voices {
		if strings.HasPrefix(strings.ToLower(v.ID), prefix) {
			out = append(out, v)
		}
	}
	return out
}
