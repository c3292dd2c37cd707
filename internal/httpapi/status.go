package httpapi

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ent0n29/speechkit/internal/store"
	"github.com/ent0n29/speechkit/internal/synth"
)

var advertisedEndpoints = []string{"/", "/voices", "/tts", "/audio/", "/test", "/cleanup", "/api/tts", "/history", "/metrics", "/tts/ws"}

type statusCheck struct {
	ID     string `json:"id"`
	Status string `json:"status"` // ok|warn|error
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Fix    string `json:"fix,omitempty"`
}

type testResponse struct {
	Status       string        `json:"status"`
	TTSAvailable bool          `json:"tts_available"`
	Engine       string        `json:"engine,omitempty"`
	Timestamp    string        `json:"timestamp"`
	Endpoints    []string      `json:"endpoints"`
	CurrentVoice string        `json:"current_voice,omitempty"`
	TTSReady     bool          `json:"tts_ready"`
	TTSError     string        `json:"tts_error,omitempty"`
	Checks       []statusCheck `json:"checks"`
}

func (s *Server) handleTest(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	resp := testResponse{
		Status:       "Server is running",
		TTSAvailable: s.engine != nil,
		Timestamp:    strconv.FormatFloat(float64(now.UnixNano())/1e9, 'f', 6, 64),
		Endpoints:    advertisedEndpoints,
		TTSReady:     s.engine != nil,
		Checks:       s.statusChecks(),
	}
	if s.engine != nil {
		resp.Engine = s.engine.Name()
		resp.CurrentVoice = s.catalog.DefaultID()
	} else if s.engineErr != nil {
		resp.TTSError = s.engineErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) statusChecks() []statusCheck {
	checks := make([]statusCheck, 0, 4)

	switch {
	case s.engine == nil:
		checks = append(checks, statusCheck{
			ID:     "engine",
			Status: "error",
			Label:  "Speech engine",
			Detail: errString(s.engineErr),
			Fix:    "Install edge-tts (pip install edge-tts) or set TTS_ENGINE=mock.",
		})
	case s.engine.Name() == "mock":
		checks = append(checks, statusCheck{
			ID:     "engine",
			Status: "warn",
			Label:  "Speech engine is mock",
			Detail: "No real speech will be generated.",
			Fix:    "Install edge-tts and set TTS_ENGINE=auto.",
		})
	default:
		checks = append(checks, statusCheck{
			ID:     "engine",
			Status: "ok",
			Label:  "Speech engine",
			Detail: s.engine.Name(),
		})
	}

	checks = append(checks, s.audioDirCheck())

	if s.history.Mode() == "postgres" {
		checks = append(checks, statusCheck{
			ID:     "history",
			Status: "ok",
			Label:  "Synthesis history",
			Detail: "postgres",
		})
	} else {
		checks = append(checks, statusCheck{
			ID:     "history",
			Status: "warn",
			Label:  "Synthesis history",
			Detail: "in-memory only",
			Fix:    "Set DATABASE_URL to persist history across restarts.",
		})
	}

	checks = append(checks, statusCheck{
		ID:     "voices",
		Status: "ok",
		Label:  "Voice catalog",
		Detail: fmt.Sprintf("%d voices, default %s", len(s.catalog.List()), s.catalog.DefaultID()),
	})
	return checks
}

func (s *Server) audioDirCheck() statusCheck {
	dir := s.files.Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return statusCheck{
			ID:     "audio_dir",
			Status: "error",
			Label:  "Audio directory",
			Detail: err.Error(),
			Fix:    "Check AUDIO_DIR exists and is writable.",
		}
	}
	var (
		count int
		bytes uint64
	)
	for _, e := range entries {
		if e.IsDir() || !store.IsGenerated(e.Name()) {
			continue
		}
		if info, err := e.Info(); err == nil {
			count++
			bytes += uint64(info.Size())
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return statusCheck{
		ID:     "audio_dir",
		Status: "ok",
		Label:  "Audio directory",
		Detail: fmt.Sprintf("%s (%d files, %s)", abs, count, humanize.Bytes(bytes)),
	}
}

func errString(err error) string {
	if err == nil {
		return synth.ErrNotAvailable.Error()
	}
	return err.Error()
}
