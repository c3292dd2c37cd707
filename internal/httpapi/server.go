package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/config"
	"github.com/ent0n29/speechkit/internal/history"
	"github.com/ent0n29/speechkit/internal/observability"
	"github.com/ent0n29/speechkit/internal/store"
	"github.com/ent0n29/speechkit/internal/synth"
	"github.com/ent0n29/speechkit/internal/voices"
)

// Deps are the collaborators a Server is built from. Engine may be nil, in
// which case EngineErr says why and synthesis endpoints answer 503.
type Deps struct {
	Catalog   *voices.Catalog
	Files     *store.Store
	Engine    synth.Engine
	EngineErr error
	History   history.Store
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

type Server struct {
	cfg       config.Config
	catalog   *voices.Catalog
	files     *store.Store
	engine    synth.Engine
	engineErr error
	history   history.Store
	metrics   *observability.Metrics
	log       *zap.Logger
	upgrader  websocket.Upgrader
	static    http.Handler
	now       func() time.Time
}

func New(cfg config.Config, deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(cfg.MetricsNamespace, nil)
	}
	hist := deps.History
	if hist == nil {
		hist = history.NewInMemoryStore(history.DefaultInMemoryCapacity)
	}
	engineErr := deps.EngineErr
	if deps.Engine == nil && engineErr == nil {
		engineErr = synth.ErrNotAvailable
	}
	return &Server{
		cfg:       cfg,
		catalog:   deps.Catalog,
		files:     deps.Files,
		engine:    deps.Engine,
		engineErr: engineErr,
		history:   hist,
		metrics:   metrics,
		log:       log.Named("httpapi"),
		static:    newStaticHandler(),
		now:       time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Every HTTP endpoint allows any origin; the websocket follows suit.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observability.AccessLog(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(answerOptions)

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/test", s.handleTest)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.metrics.Handler().ServeHTTP(w, r)
	})

	r.Get("/voices", s.handleListVoices)
	r.Get("/audio/{filename}", s.handleAudio)
	r.Get("/cleanup", s.handleCleanup)
	r.Post("/cleanup", s.handleCleanup)
	r.Get("/history", s.handleHistory)
	r.Get("/tts/ws", s.handleTTSWS)

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))
		}
		r.Post("/tts", s.handleTTS)
		r.Post("/api/tts", s.handleInlineTTS)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"tts_available": s.engine != nil,
		"history_mode":  s.history.Mode(),
	})
}

// answerOptions replies to OPTIONS requests that are not CORS preflights,
// which the cors handler passes through.
func answerOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
	})
}

// maxBodyBytes bounds a JSON request body, matching the websocket frame limit.
const maxBodyBytes = wsReadLimit

var (
	errEmptyBody    = errors.New("empty body")
	errBodyTooLarge = fmt.Errorf("request body too large (max %d bytes)", maxBodyBytes)
)

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &tooLarge):
			return errBodyTooLarge
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message})
}
