package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/config"
	"github.com/ent0n29/speechkit/internal/history"
	"github.com/ent0n29/speechkit/internal/httpapi"
	"github.com/ent0n29/speechkit/internal/observability"
	"github.com/ent0n29/speechkit/internal/store"
	"github.com/ent0n29/speechkit/internal/synth"
	"github.com/ent0n29/speechkit/internal/voices"
)

type EngineInfo struct {
	Name   string
	Detail string
}

type BuildResult struct {
	Config  config.Config
	API     *httpapi.Server
	Catalog *voices.Catalog
	Files   *store.Store
	Engine  synth.Engine
	History history.Store
	Metrics *observability.Metrics
	Info    EngineInfo

	// Cleanup should be called on shutdown to release external resources (DB pool).
	Cleanup func() error
}

// Build wires every component of the server from cfg. reg may be nil.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger, reg *prometheus.Registry) (*BuildResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	metrics := observability.NewMetrics(cfg.MetricsNamespace, reg)

	catalog, err := voices.Load(cfg.DefaultVoice, cfg.VoicesFile)
	if err != nil {
		return nil, fmt.Errorf("voice catalog init failed: %w", err)
	}

	files, err := NewFileStore(cfg, log, metrics)
	if err != nil {
		return nil, err
	}

	setup, err := resolveEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	hist, err := history.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("history store init failed: %w", err)
	}

	api := httpapi.New(cfg, httpapi.Deps{
		Catalog:   catalog,
		Files:     files,
		Engine:    setup.engine,
		EngineErr: setup.err,
		History:   hist,
		Metrics:   metrics,
		Logger:    log,
	})

	info := EngineInfo{Detail: setup.detail}
	if setup.engine != nil {
		info.Name = setup.engine.Name()
	}

	return &BuildResult{
		Config:  cfg,
		API:     api,
		Catalog: catalog,
		Files:   files,
		Engine:  setup.engine,
		History: hist,
		Metrics: metrics,
		Info:    info,
		Cleanup: hist.Close,
	}, nil
}

// NewFileStore opens the audio directory described by cfg. metrics may be nil.
func NewFileStore(cfg config.Config, log *zap.Logger, metrics *observability.Metrics) (*store.Store, error) {
	storeCfg := store.Config{
		Dir:    cfg.AudioDir,
		MaxAge: cfg.AudioMaxAge,
		Grace:  cfg.AudioDeleteGrace,
	}
	if metrics != nil {
		storeCfg.OnRemove = metrics.FileRemoved
	}
	files, err := store.New(storeCfg, log)
	if err != nil {
		return nil, fmt.Errorf("audio store init failed: %w", err)
	}
	return files, nil
}
