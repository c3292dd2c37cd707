// Package synth runs text-to-speech engines that write audio to a file.
package synth

import (
	"context"
	"errors"
	"math"
	"strconv"
)

var (
	ErrNotAvailable = errors.New("tts engine not available")
	ErrEmptyText    = errors.New("empty text")
)

// Failure reasons carried by EngineError.
const (
	ReasonEngineFailed = "engine_failed"
	ReasonTimeout      = "timeout"
	ReasonNoOutput     = "no_output"
)

// EngineError is a synthesis attempt that ran and failed.
type EngineError struct {
	Reason string
	Detail string
}

func (e *EngineError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Detail
}

// Request is one synthesis job. Rate and Volume are multipliers where 1.0
// means the engine default; non-positive values also mean the default.
type Request struct {
	Text   string
	Voice  string
	Rate   float64
	Volume float64
}

// Engine writes synthesized audio for req to dest. Implementations block
// until the audio is fully written or the attempt fails; no retry is made.
type Engine interface {
	Synthesize(ctx context.Context, req Request, dest string) error
	Name() string
}

// MaxProsodyMultiplier caps rate and volume before conversion.
const MaxProsodyMultiplier = 10.0

// ProsodyPercent converts a multiplier to the signed percentage string edge-tts
// expects: 1.5 -> "+50%", 0.8 -> "-20%", 1.0 -> "+0%". Multipliers above
// MaxProsodyMultiplier are clamped to it.
func ProsodyPercent(multiplier float64) string {
	if !(multiplier > 0) {
		return "+0%"
	}
	multiplier = math.Min(multiplier, MaxProsodyMultiplier)
	// Round so 0.8 does not truncate to -19%.
	pct := int(math.Round((multiplier - 1) * 100))
	if pct <= -100 {
		pct = -99
	}
	if pct >= 0 {
		return "+" + strconv.Itoa(pct) + "%"
	}
	return strconv.Itoa(pct) + "%"
}
