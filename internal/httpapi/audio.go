package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/store"
)

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	f, art, err := s.files.Open(name)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidName) {
			s.log.Warn("open audio failed", zap.String("file", name), zap.Error(err))
		}
		respondError(w, http.StatusNotFound, "Audio file not found")
		return
	}
	defer f.Close()

	h := w.Header()
	h.Set("Content-Type", "audio/mpeg")
	h.Set("Content-Length", strconv.FormatInt(art.Size, 10))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name))
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, f)
	s.metrics.AudioBytesServed.Add(float64(n))
	if err != nil {
		s.log.Debug("audio stream interrupted", zap.String("file", name), zap.Error(err))
		return
	}
	s.files.ScheduleDelete(name)
}
