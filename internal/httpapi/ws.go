package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsReadLimit    = 64 << 10
	wsIdleTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// wsErrorResponse carries the HTTP status the same request would have had on /tts.
type wsErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// handleTTSWS serves synthesis over a websocket: every text frame is a /tts
// request body and gets one JSON reply. Requests on a connection run in order.
func (s *Server) handleTTSWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		return nil
	})

	ctx := context.WithoutCancel(r.Context())
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("websocket closed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		var reply any
		var req ttsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.metrics.TTSRequests.WithLabelValues(outcomeInvalid).Inc()
			reply = wsErrorResponse{Error: fmt.Sprintf("Invalid JSON format: %v", err), Status: http.StatusBadRequest}
		} else if resp, rerr := s.synthesize(ctx, req, s.cfg.MaxTextChars); rerr != nil {
			reply = wsErrorResponse{Error: rerr.message, Status: rerr.status}
		} else {
			reply = resp
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
