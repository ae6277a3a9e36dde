package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	AuthStrategy    string        `env:"AUTH_STRATEGY"`
	TokenTTL        time.Duration `env:"TOKEN_TTL"`
	NotifyURL       string        `env:"NOTIFY_URL"`
	NotifyWorkers   int           `env:"NOTIFY_WORKERS"`
	NotifyBuffer    int           `env:"NOTIFY_BUFFER"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	AdminLogin      string        `env:"ADMIN_LOGIN"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST"`
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultAuthStrategy    = "hmac"
	defaultTokenTTL        = 24 * time.Hour
	defaultNotifyWorkers   = 2
	defaultNotifyBuffer    = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultRateLimitRPS    = 5
	defaultRateLimitBurst  = 10
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], env.Parse)
}

func load(args []string, parse func(any) error) (*Config, error) {
	cfg := &Config{
		RunAddress:      defaultRunAddress,
		AuthSecret:      defaultAuthSecret,
		AuthStrategy:    defaultAuthStrategy,
		TokenTTL:        defaultTokenTTL,
		NotifyWorkers:   defaultNotifyWorkers,
		NotifyBuffer:    defaultNotifyBuffer,
		ShutdownTimeout: defaultShutdownTimeout,
		RateLimitRPS:    defaultRateLimitRPS,
		RateLimitBurst:  defaultRateLimitBurst,
	}

	if err := parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("ordertrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Auth token strategy: hmac or jwt")
	fs.StringVar(&cfg.NotifyURL, "n", cfg.NotifyURL, "Webhook URL for milestone notifications")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification workers")
	fs.IntVar(&cfg.NotifyBuffer, "notify-buffer", cfg.NotifyBuffer, "Size of the notification event queue")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.AuthStrategy != "hmac" && cfg.AuthStrategy != "jwt" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyBuffer <= 0 {
		cfg.NotifyBuffer = defaultNotifyBuffer
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}
