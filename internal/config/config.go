package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRunAddress      = ":5001"
	DefaultUploadDir       = "uploads"
	DefaultAllowedOrigins  = "*"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config carries the runtime settings. Flags provide defaults, environment
// variables win over flags.
type Config struct {
	RunAddress       string        `env:"RUN_ADDRESS"`
	UploadDir        string        `env:"UPLOAD_DIR"`
	AuditDatabaseDSN string        `env:"AUDIT_DATABASE_DSN"`
	AllowedOrigins   string        `env:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

func Read() (*Config, error) {
	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", DefaultRunAddress, "address to listen on")
	flag.StringVar(&cfg.UploadDir, "u", DefaultUploadDir, "directory for uploaded export files")
	flag.StringVar(&cfg.AuditDatabaseDSN, "d", "", "postgres dsn for the audit log mirror, empty disables it")
	flag.StringVar(&cfg.AllowedOrigins, "o", DefaultAllowedOrigins, "comma-separated CORS origins")
	flag.DurationVar(&cfg.ShutdownTimeout, "t", DefaultShutdownTimeout, "graceful shutdown timeout")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Origins splits the configured CORS origins.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
