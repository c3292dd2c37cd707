package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/config"
	"github.com/ent0n29/speechkit/internal/synth"
)

type engineSetup struct {
	engine synth.Engine
	// err explains a nil engine; synthesis endpoints report it.
	err    error
	detail string
}

// resolveEngine picks the synthesis engine for cfg.Engine. Only "auto"
// tolerates a missing edge-tts; the server then runs without synthesis.
func resolveEngine(cfg config.Config, log *zap.Logger) (engineSetup, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if mode == "" {
		mode = "auto"
	}
	edgeCfg := synth.EdgeConfig{Binary: cfg.EdgeBinary, Timeout: cfg.SynthTimeout}

	switch mode {
	case "edge":
		e, err := synth.NewEngine(mode, edgeCfg, log)
		if err != nil {
			return engineSetup{}, fmt.Errorf("TTS_ENGINE=edge: %w", err)
		}
		return engineSetup{engine: e, detail: "edge-tts"}, nil
	case "mock":
		e, err := synth.NewEngine(mode, edgeCfg, log)
		if err != nil {
			return engineSetup{}, err
		}
		return engineSetup{engine: e, detail: "mock"}, nil
	case "auto":
		e, err := synth.NewEngine(mode, edgeCfg, log)
		if err != nil {
			if synth.IsNotAvailable(err) {
				return engineSetup{err: err, detail: "unavailable (edge-tts not installed)"}, nil
			}
			return engineSetup{}, err
		}
		return engineSetup{engine: e, detail: "edge-tts"}, nil
	default:
		return engineSetup{}, fmt.Errorf("invalid TTS_ENGINE: %q (expected auto|edge|mock)", cfg.Engine)
	}
}
