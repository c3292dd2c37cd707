package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type cleanupResponse struct {
	Success      bool   `json:"success"`
	CleanedFiles int    `json:"cleaned_files"`
	Message      string `json:"message"`
}

func (s *Server) handleCleanup(w http.ResponseWriter, _ *http.Request) {
	n := s.files.CleanupAll()
	respondJSON(w, http.StatusOK, cleanupResponse{
		Success:      true,
		CleanedFiles: n,
		Message:      fmt.Sprintf("Cleaned up %d temporary files", n),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	items, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"mode":  s.history.Mode(),
	})
}
