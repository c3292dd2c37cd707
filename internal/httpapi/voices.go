package httpapi

import (
	"net/http"
	"strings"

	"github.com/ent0n29/speechkit/internal/voices"
)

type voiceSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Lang   string `json:"lang"`
	Gender string `json:"gender,omitempty"`
	Style  string `json:"style,omitempty"`
}

type listVoicesResponse struct {
	Voices       []voiceSummary `json:"voices"`
	DefaultVoice string         `json:"default_voice"`
}

func (s *Server) handleListVoices(w http.ResponseWriter, r *http.Request) {
	var list []voices.Voice
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		list = s.catalog.ByLanguage(lang)
	} else {
		list = s.catalog.List()
	}

	out := make([]voiceSummary, 0, len(list))
	for _, v := range list {
		out = append(out, voiceSummary{
			ID:     v.ID,
			Name:   v.DisplayName(),
			Lang:   v.Lang(),
			Gender: v.Gender,
			Style:  v.Style,
		})
	}
	respondJSON(w, http.StatusOK, listVoicesResponse{
		Voices:       out,
		DefaultVoice: s.catalog.DefaultID(),
	})
}
