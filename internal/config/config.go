package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/studyloop/studyloop/internal/pomodoro"
)

// Config holds all runtime configuration for studyloop.
type Config struct {
	DBPath   string
	Addr     string
	LogLevel string // debug, info, warn, error
	Owner    string // default owner name for local CLI commands
	Pomodoro pomodoro.Settings
}

// DefaultConfig returns a Config with sensible defaults.
// The database lives under ~/.studyloop.
func DefaultConfig() Config {
	dbPath := "studyloop.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".studyloop", "studyloop.db")
	}
	return Config{
		DBPath:   dbPath,
		Addr:     "127.0.0.1:8057",
		LogLevel: "info",
		Owner:    "local",
		Pomodoro: pomodoro.DefaultSettings(),
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYLOOP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDYLOOP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STUDYLOOP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STUDYLOOP_OWNER"); v != "" {
		cfg.Owner = v
	}

	applyMinutesEnv(&cfg.Pomodoro.Work, "STUDYLOOP_WORK_MIN")
	applyMinutesEnv(&cfg.Pomodoro.ShortBreak, "STUDYLOOP_SHORT_BREAK_MIN")
	applyMinutesEnv(&cfg.Pomodoro.LongBreak, "STUDYLOOP_LONG_BREAK_MIN")

	return cfg
}

func applyMinutesEnv(dst *time.Duration, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = time.Duration(n) * time.Minute
}
