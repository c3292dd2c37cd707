package httpapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/store"
)

type inlineTTSResponse struct {
	Success   bool   `json:"success"`
	AudioData string `json:"audio_data"`
	Message   string `json:"message"`
}

// handleInlineTTS returns the audio in the response body instead of a URL.
// Text beyond the inline cap is cut rather than rejected, and the file is
// removed as soon as it has been read.
func (s *Server) handleInlineTTS(w http.ResponseWriter, r *http.Request) {
	req, rerr := s.decodeTTSRequest(w, r)
	if rerr != nil {
		respondError(w, rerr.status, rerr.message)
		return
	}
	if limit := s.cfg.InlineMaxTextChars; limit > 0 {
		if runes := []rune(req.Text); len(runes) > limit {
			req.Text = string(runes[:limit])
		}
	}

	resp, rerr := s.synthesize(context.WithoutCancel(r.Context()), req, s.cfg.InlineMaxTextChars)
	if rerr != nil {
		respondError(w, rerr.status, rerr.message)
		return
	}

	data, err := s.readAndRemove(resp.Filename)
	if err != nil {
		s.log.Warn("read inline audio failed", zap.String("file", resp.Filename), zap.Error(err))
		respondError(w, http.StatusOK, "Failed to generate audio data")
		return
	}
	respondJSON(w, http.StatusOK, inlineTTSResponse{
		Success:   true,
		AudioData: base64.StdEncoding.EncodeToString(data),
		Message:   fmt.Sprintf("Audio generated successfully (%d bytes)", len(data)),
	})
}

func (s *Server) readAndRemove(name string) ([]byte, error) {
	f, _, err := s.files.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	f.Close()
	if _, rmErr := s.files.Remove(name, store.TriggerInline); rmErr != nil {
		s.log.Warn("remove inline audio failed", zap.String("file", name), zap.Error(rmErr))
	}
	return data, err
}
