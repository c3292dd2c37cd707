package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultEdgeBinary  = "edge-tts"
	DefaultTimeout     = 30 * time.Second
	maxDiagnosticBytes = 4 << 10
)

type EdgeConfig struct {
	Binary  string
	Timeout time.Duration
}

// EdgeTTS drives the edge-tts command line tool.
type EdgeTTS struct {
	path    string
	timeout time.Duration
	log     *zap.Logger
}

// NewEdgeTTS resolves the edge-tts binary. A missing binary yields ErrNotAvailable.
func NewEdgeTTS(cfg EdgeConfig, log *zap.Logger) (*EdgeTTS, error) {
	bin := strings.TrimSpace(cfg.Binary)
	if bin == "" {
		bin = DefaultEdgeBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found on PATH (pip install edge-tts)", ErrNotAvailable, bin)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EdgeTTS{path: path, timeout: timeout, log: log.Named("edge-tts")}, nil
}

func (e *EdgeTTS) Name() string { return "edge-tts" }

// args joins every value to its flag. edge-tts parses argv with argparse,
// which reads a separate "-20%" or "-hello" token as an unknown option.
func (e *EdgeTTS) args(req Request, dest string) []string {
	return []string{
		"--voice=" + req.Voice,
		"--text=" + req.Text,
		"--rate=" + ProsodyPercent(req.Rate),
		"--volume=" + ProsodyPercent(req.Volume),
		"--write-media=" + dest,
	}
}

func (e *EdgeTTS) Synthesize(ctx context.Context, req Request, dest string) error {
	if strings.TrimSpace(req.Text) == "" {
		return ErrEmptyText
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.path, e.args(req, dest)...)
	cmd.WaitDelay = 2 * time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debug("running synthesis",
		zap.String("voice", req.Voice),
		zap.Int("text_len", len(req.Text)),
		zap.String("dest", dest),
	)
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &EngineError{Reason: ReasonTimeout, Detail: fmt.Sprintf("edge-tts did not finish within %s", e.timeout)}
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return context.Canceled
		}
		detail := tail(stderr.String())
		if detail == "" {
			detail = tail(stdout.String())
		}
		if detail == "" {
			detail = err.Error()
		}
		return &EngineError{Reason: ReasonEngineFailed, Detail: detail}
	}
	return checkOutput(dest)
}

func checkOutput(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		return &EngineError{Reason: ReasonNoOutput, Detail: "audio file was not generated"}
	}
	if info.Size() == 0 {
		return &EngineError{Reason: ReasonNoOutput, Detail: "audio file is empty"}
	}
	return nil
}

// tail keeps the end of a diagnostic stream, where the actual error usually is.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDiagnosticBytes {
		s = strings.TrimSpace(s[len(s)-maxDiagnosticBytes:])
	}
	return s
}
