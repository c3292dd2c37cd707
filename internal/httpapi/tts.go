package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/history"
	"github.com/ent0n29/speechkit/internal/store"
	"github.com/ent0n29/speechkit/internal/synth"
)

const cleanupInfo = "File will be auto-deleted after download or on page refresh"

// Request outcomes, also used as the tts_requests_total label.
const (
	outcomeSuccess     = "success"
	outcomeInvalid     = "invalid_input"
	outcomeUnavailable = "unavailable"
	outcomeEngineError = "engine_error"
)

type ttsRequest struct {
	Text   string   `json:"text"`
	Voice  string   `json:"voice"`
	Rate   *float64 `json:"rate"`
	Volume *float64 `json:"volume"`
	// Plain strips markdown and symbols before synthesis.
	Plain bool `json:"plain,omitempty"`
}

type ttsResponse struct {
	Success     bool    `json:"success"`
	AudioURL    string  `json:"audio_url"`
	Filename    string  `json:"filename"`
	Text        string  `json:"text"`
	Voice       string  `json:"voice"`
	Rate        float64 `json:"rate"`
	Volume      float64 `json:"volume"`
	FileSize    int64   `json:"file_size"`
	Message     string  `json:"message"`
	CleanupInfo string  `json:"cleanup_info"`
}

// requestError is a failure that ends a synthesis request. Engine failures
// keep status 200 and carry the reason in the body.
type requestError struct {
	status  int
	outcome string
	message string
}

func (e *requestError) Error() string { return e.message }

func inputError(format string, args ...any) *requestError {
	return &requestError{status: http.StatusBadRequest, outcome: outcomeInvalid, message: fmt.Sprintf(format, args...)}
}

// decodeTTSRequest reads a synthesis request body, counting rejected bodies.
func (s *Server) decodeTTSRequest(w http.ResponseWriter, r *http.Request) (ttsRequest, *requestError) {
	var req ttsRequest
	err := decodeJSON(w, r, &req)
	if err == nil {
		return req, nil
	}
	var rerr *requestError
	switch {
	case errors.Is(err, errEmptyBody):
		rerr = inputError("No data received")
	case errors.Is(err, errBodyTooLarge):
		rerr = inputError("Request body too large (max %d bytes)", maxBodyBytes)
	default:
		rerr = inputError("Invalid JSON format: %v", err)
	}
	s.metrics.TTSRequests.WithLabelValues(rerr.outcome).Inc()
	return req, rerr
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	req, rerr := s.decodeTTSRequest(w, r)
	if rerr != nil {
		respondError(w, rerr.status, rerr.message)
		return
	}

	// The engine runs to completion even if the client goes away.
	resp, rerr := s.synthesize(context.WithoutCancel(r.Context()), req, s.cfg.MaxTextChars)
	if rerr != nil {
		respondError(w, rerr.status, rerr.message)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// validate applies defaults and the length cap, returning the engine request.
func (s *Server) validate(req ttsRequest, maxChars int) (synth.Request, *requestError) {
	if req.Plain {
		req.Text = synth.Speakable(req.Text)
	}
	if strings.TrimSpace(req.Text) == "" {
		return synth.Request{}, inputError("No text provided")
	}
	if maxChars > 0 && utf8.RuneCountInString(req.Text) > maxChars {
		return synth.Request{}, inputError("Text too long (max %d characters)", maxChars)
	}
	out := synth.Request{
		Text:   req.Text,
		Voice:  s.catalog.Lookup(req.Voice).ID,
		Rate:   s.cfg.DefaultRate,
		Volume: s.cfg.DefaultVolume,
	}
	if req.Rate != nil {
		out.Rate = *req.Rate
	}
	if req.Volume != nil {
		out.Volume = *req.Volume
	}
	return out, nil
}

// synthesize runs one request through validation, the age sweep and the
// engine, and records the outcome. On success the artifact exists on disk.
func (s *Server) synthesize(ctx context.Context, req ttsRequest, maxChars int) (ttsResponse, *requestError) {
	sreq, rerr := s.validate(req, maxChars)
	if rerr != nil {
		s.metrics.TTSRequests.WithLabelValues(rerr.outcome).Inc()
		return ttsResponse{}, rerr
	}
	if s.engine == nil {
		s.metrics.TTSRequests.WithLabelValues(outcomeUnavailable).Inc()
		return ttsResponse{}, &requestError{
			status:  http.StatusServiceUnavailable,
			outcome: outcomeUnavailable,
			message: fmt.Sprintf("TTS engine not available: %v", s.engineErr),
		}
	}

	now := s.now()
	s.files.Sweep(now)

	name := s.files.NewName(now)
	path, err := s.files.Path(name)
	if err != nil {
		return ttsResponse{}, s.engineFailure(ctx, sreq, name, err)
	}

	start := s.now()
	err = s.engine.Synthesize(ctx, sreq, path)
	s.metrics.ObserveSynthesis(s.now().Sub(start))
	if err != nil {
		return ttsResponse{}, s.engineFailure(ctx, sreq, name, err)
	}

	art, err := s.files.Stat(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = &synth.EngineError{Reason: synth.ReasonNoOutput, Detail: "audio file was not generated"}
		}
		return ttsResponse{}, s.engineFailure(ctx, sreq, name, err)
	}

	s.metrics.TTSRequests.WithLabelValues(outcomeSuccess).Inc()
	s.log.Info("generated audio",
		zap.String("file", name),
		zap.Int64("bytes", art.Size),
		zap.String("voice", sreq.Voice),
	)
	s.record(ctx, history.Record{
		Filename: name,
		Text:     sreq.Text,
		Voice:    sreq.Voice,
		Rate:     sreq.Rate,
		Volume:   sreq.Volume,
		FileSize: art.Size,
		Success:  true,
	})

	return ttsResponse{
		Success:     true,
		AudioURL:    "/audio/" + name,
		Filename:    name,
		Text:        sreq.Text,
		Voice:       sreq.Voice,
		Rate:        sreq.Rate,
		Volume:      sreq.Volume,
		FileSize:    art.Size,
		Message:     fmt.Sprintf("Audio generated successfully (%d bytes)", art.Size),
		CleanupInfo: cleanupInfo,
	}, nil
}

// engineFailure discards any partial output and reports err as a
// success:false body.
func (s *Server) engineFailure(ctx context.Context, sreq synth.Request, name string, err error) *requestError {
	if _, rmErr := s.files.Remove(name, store.TriggerDiscard); rmErr != nil {
		s.log.Warn("discard partial audio failed", zap.String("file", name), zap.Error(rmErr))
	}
	s.metrics.TTSRequests.WithLabelValues(outcomeEngineError).Inc()
	s.log.Warn("audio generation failed", zap.String("voice", sreq.Voice), zap.Error(err))

	msg := "Audio generation error: " + err.Error()
	s.record(ctx, history.Record{
		Text:   sreq.Text,
		Voice:  sreq.Voice,
		Rate:   sreq.Rate,
		Volume: sreq.Volume,
		Error:  msg,
	})
	return &requestError{status: http.StatusOK, outcome: outcomeEngineError, message: msg}
}

func (s *Server) record(ctx context.Context, rec history.Record) {
	rec.CreatedAt = s.now().UTC()
	if err := s.history.Save(ctx, rec); err != nil {
		s.log.Warn("save history failed", zap.Error(err))
	}
}
