package synth

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NewEngine selects an engine by mode: "edge" requires edge-tts, "mock" never
// synthesizes real speech, and "auto" prefers edge-tts and reports
// ErrNotAvailable when it is missing so callers can degrade explicitly.
func NewEngine(mode string, cfg EdgeConfig, log *zap.Logger) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto", "edge":
		e, err := NewEdgeTTS(cfg, log)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("invalid TTS_ENGINE: %q (expected auto|edge|mock)", mode)
	}
}

// IsNotAvailable reports whether err means the engine is not installed.
func IsNotAvailable(err error) bool {
	return errors.Is(err, ErrNotAvailable)
}
