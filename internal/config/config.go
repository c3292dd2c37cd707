package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains all runtime settings for the speech toolkit.
type Config struct {
	BindAddr         string        `env:"APP_BIND_ADDR" envDefault:":8000"`
	ShutdownTimeout  time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel         string        `env:"APP_LOG_LEVEL" envDefault:"info"`
	LogDevelopment   bool          `env:"APP_LOG_DEV" envDefault:"false"`
	MetricsNamespace string        `env:"APP_METRICS_NAMESPACE" envDefault:"speechkit"`

	// 0 disables rate limiting of the synthesis endpoints.
	RateLimitPerMinute int `env:"APP_RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	Engine             string        `env:"TTS_ENGINE" envDefault:"auto"`
	EdgeBinary         string        `env:"TTS_EDGE_BINARY" envDefault:"edge-tts"`
	SynthTimeout       time.Duration `env:"TTS_TIMEOUT" envDefault:"30s"`
	MaxTextChars       int           `env:"TTS_MAX_TEXT_CHARS" envDefault:"5000"`
	InlineMaxTextChars int           `env:"TTS_INLINE_MAX_TEXT_CHARS" envDefault:"1000"`
	DefaultVoice       string        `env:"TTS_DEFAULT_VOICE" envDefault:"en-US-JennyNeural"`
	DefaultRate        float64       `env:"TTS_DEFAULT_RATE" envDefault:"1.0"`
	DefaultVolume      float64       `env:"TTS_DEFAULT_VOLUME" envDefault:"0.8"`
	VoicesFile         string        `env:"VOICES_FILE"`

	AudioDir         string        `env:"AUDIO_DIR" envDefault:"audio"`
	AudioMaxAge      time.Duration `env:"AUDIO_MAX_AGE" envDefault:"1h"`
	AudioDeleteGrace time.Duration `env:"AUDIO_DELETE_GRACE" envDefault:"30s"`

	DatabaseURL string `env:"DATABASE_URL"`
}

// Load reads an optional .env file, then environment variables, and applies defaults.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		// Existing process env wins over the file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	cfg.DefaultVoice = strings.TrimSpace(cfg.DefaultVoice)
	cfg.VoicesFile = strings.TrimSpace(cfg.VoicesFile)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	switch c.Engine {
	case "auto", "edge", "mock":
	default:
		return fmt.Errorf("invalid TTS_ENGINE: %q (expected auto|edge|mock)", c.Engine)
	}
	if c.SynthTimeout <= 0 {
		return fmt.Errorf("TTS_TIMEOUT must be positive")
	}
	if c.MaxTextChars <= 0 {
		return fmt.Errorf("TTS_MAX_TEXT_CHARS must be positive")
	}
	if c.InlineMaxTextChars <= 0 {
		return fmt.Errorf("TTS_INLINE_MAX_TEXT_CHARS must be positive")
	}
	if c.DefaultVoice == "" {
		return fmt.Errorf("TTS_DEFAULT_VOICE must not be empty")
	}
	if c.AudioMaxAge <= 0 {
		return fmt.Errorf("AUDIO_MAX_AGE must be positive")
	}
	if c.AudioDeleteGrace < 0 {
		return fmt.Errorf("AUDIO_DELETE_GRACE must be >= 0")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("APP_RATE_LIMIT_PER_MINUTE must be >= 0")
	}
	if strings.TrimSpace(c.AudioDir) == "" {
		return fmt.Errorf("AUDIO_DIR must not be empty")
	}
	return nil
}
