package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, name := range []string{
		"STUDYLOOP_DB", "STUDYLOOP_ADDR", "STUDYLOOP_LOG_LEVEL", "STUDYLOOP_OWNER",
		"STUDYLOOP_WORK_MIN", "STUDYLOOP_SHORT_BREAK_MIN", "STUDYLOOP_LONG_BREAK_MIN",
	} {
		t.Setenv(name, "")
	}

	cfg := LoadConfig()

	assert.Contains(t, cfg.DBPath, "studyloop.db")
	assert.Equal(t, "127.0.0.1:8057", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "local", cfg.Owner)
	assert.Equal(t, 25*time.Minute, cfg.Pomodoro.Work)
	assert.Equal(t, 5*time.Minute, cfg.Pomodoro.ShortBreak)
	assert.Equal(t, 15*time.Minute, cfg.Pomodoro.LongBreak)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYLOOP_DB", "/tmp/custom.db")
	t.Setenv("STUDYLOOP_ADDR", "0.0.0.0:9000")
	t.Setenv("STUDYLOOP_LOG_LEVEL", "debug")
	t.Setenv("STUDYLOOP_OWNER", "alice")
	t.Setenv("STUDYLOOP_WORK_MIN", "50")
	t.Setenv("STUDYLOOP_SHORT_BREAK_MIN", "10")
	t.Setenv("STUDYLOOP_LONG_BREAK_MIN", "20")

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "alice", cfg.Owner)
	assert.Equal(t, 50*time.Minute, cfg.Pomodoro.Work)
	assert.Equal(t, 10*time.Minute, cfg.Pomodoro.ShortBreak)
	assert.Equal(t, 20*time.Minute, cfg.Pomodoro.LongBreak)
}

func TestLoadConfig_InvalidMinutesIgnored(t *testing.T) {
	t.Setenv("STUDYLOOP_WORK_MIN", "banana")
	t.Setenv("STUDYLOOP_SHORT_BREAK_MIN", "-3")
	t.Setenv("STUDYLOOP_LONG_BREAK_MIN", "0")

	cfg := LoadConfig()

	assert.Equal(t, 25*time.Minute, cfg.Pomodoro.Work)
	assert.Equal(t, 5*time.Minute, cfg.Pomodoro.ShortBreak)
	assert.Equal(t, 15*time.Minute, cfg.Pomodoro.LongBreak)
}
