package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data sources the dashboard can load its tables from
const (
	SourceCSV = "csv"
	SourceSQL = "sql"
)

type Config struct {
	Port          int
	DataDir       string
	Source        string
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	SessionTTL    time.Duration
	LogLevel      slog.Level
}

// LoadEnvFile loads variables from a .env file into the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, level string

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")

	// Data source
	fs.StringVar(&cfg.DataDir, "data", "", "Directory holding the CSV tables")
	fs.StringVar(&cfg.Source, "source", "", "Where to load tables from (csv or sql)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Sessions (prefer env for the secret, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie secret (prefer env)")
	fs.StringVar(&ttl, "session-ttl", "", "Idle time before a session is discarded")

	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DataDir = orEnv(cfg.DataDir, "DATA_DIR", "./data")
	cfg.Source = strings.ToLower(orEnv(cfg.Source, "DATA_SOURCE", SourceCSV))
	if cfg.Source != SourceCSV && cfg.Source != SourceSQL {
		return Config{}, fmt.Errorf("data source must be %s or %s, got %q", SourceCSV, SourceSQL, cfg.Source)
	}

	cfg.DatabaseURL = orEnv(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.DatabaseType = strings.ToLower(orEnv(cfg.DatabaseType, "DATABASE_TYPE", "sqlite"))
	if cfg.Source == SourceSQL {
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for sql source (use -d or DATABASE_URL env)")
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("database type must be sqlite or postgres, got %q", cfg.DatabaseType)
		}
	}

	cfg.SessionSecret = orEnv(cfg.SessionSecret, "SESSION_SECRET", "")

	ttl = orEnv(ttl, "SESSION_TTL", "30m")
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("invalid session TTL %q", ttl)
	}
	cfg.SessionTTL = d

	level = orEnv(level, "LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}

	return cfg, nil
}

func orEnv(v, key, def string) string {
	if v != "" {
		return v
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return def
}
