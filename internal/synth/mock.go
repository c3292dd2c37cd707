package synth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// mpegFrameHeader is a valid MPEG-1 Layer III frame header (128 kbps, 44.1 kHz).
var mpegFrameHeader = []byte{0xFF, 0xFB, 0x90, 0x64}

// Mock writes a small deterministic payload instead of real speech. It is used
// when no engine is installed and by tests.
type Mock struct {
	mu       sync.Mutex
	requests []Request
	// Fail, when set, is returned instead of writing audio.
	Fail error
}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Synthesize(ctx context.Context, req Request, dest string) error {
	if strings.TrimSpace(req.Text) == "" {
		return ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	fail := m.Fail
	m.mu.Unlock()
	if fail != nil {
		return fail
	}

	payload := append([]byte{}, mpegFrameHeader...)
	payload = append(payload, fmt.Sprintf("voice=%s rate=%s volume=%s text=%s",
		req.Voice, ProsodyPercent(req.Rate), ProsodyPercent(req.Volume), req.Text)...)
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return &EngineError{Reason: ReasonNoOutput, Detail: err.Error()}
	}
	return nil
}

// Requests returns the requests seen so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
