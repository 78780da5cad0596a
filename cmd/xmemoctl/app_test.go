package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xmemo/pkg/config/xconf"
	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/util/xlru"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(&out)
	t.Cleanup(func() { _ = a.close() })
	err := a.command().Run(context.Background(), append([]string{"xmemoctl"}, args...))
	return out.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultAppConfig(), cfg)
	assert.Equal(t, xlru.DefaultConfig(), cfg.Cache)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "xmemo.yaml", `
log:
  level: debug
cache:
  max_size: 64
  ttl: 90s
  background_cleanup: true
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, xlog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, xlru.Config{
		MaxSize:           64,
		TTL:               90 * time.Second,
		BackgroundCleanup: true,
	}, cfg.Cache)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown key", "a.yaml", "cache:\n  maxsize: 1\n", xconf.ErrUnmarshalFailed},
		{"bad level", "b.json", `{"log": {"level": "loud"}}`, xconf.ErrUnmarshalFailed},
		{"bad syntax", "c.json", `{`, xconf.ErrParseFailed},
		{"bad extension", "d.toml", "", xconf.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.file, tt.content))
			var usageErr *usageError
			require.ErrorAs(t, err, &usageErr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_InvalidLogSettings(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "demo", "--ttl", "10ms", "--hold", "0s", "--wait", "20ms")
	var usageErr *usageError
	require.ErrorAs(t, err, &usageErr)
	assert.ErrorIs(t, err, xlog.ErrInvalidLevel)
}

func TestApp_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "xmemoctl.log")
	_, err := runApp(t, "--log-level", "debug", "--log-file", logPath,
		"demo", "--ttl", "20ms", "--hold", "0s", "--wait", "40ms")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "demo finished")
}

func TestApp_Demo(t *testing.T) {
	out, err := runApp(t, "demo", "--ttl", "100ms", "--hold", "10ms", "--wait", "150ms")
	require.NoError(t, err)

	assert.Equal(t, " Create f(3)\noutput:  3\n2\nKeyNotFound: xlru: key not found\n", out)
}

func TestRunDemo_FakeClock(t *testing.T) {
	var out bytes.Buffer
	a := newApp(&out)
	fc := clockwork.NewFakeClock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.runDemo(ctx, fc, demoOptions{ttl: 3 * time.Second, hold: 2 * time.Second, wait: 4 * time.Second})
	}()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(2 * time.Second)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(4 * time.Second)

	require.NoError(t, <-done)
	assert.Equal(t, 1, strings.Count(out.String(), "Create f(3)"))
	assert.Contains(t, out.String(), "KeyNotFound")
}

func TestRunDemo_Canceled(t *testing.T) {
	a := newApp(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.runDemo(ctx, clockwork.NewFakeClock(), demoOptions{ttl: time.Second, hold: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunDemo_InvalidOptions(t *testing.T) {
	a := newApp(&bytes.Buffer{})
	err := a.runDemo(context.Background(), clockwork.NewFakeClock(), demoOptions{})
	var usageErr *usageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestApp_Soak(t *testing.T) {
	path := writeConfig(t, "soak.json", `{"cache": {"max_size": 32, "ttl": "50ms"}}`)
	out, err := runApp(t, "-c", path, "soak", "--workers", "4", "--duration", "100ms", "--keys", "64")
	require.NoError(t, err)

	assert.Contains(t, out, "entries=")
	assert.Contains(t, out, "memo calls: hit=")
}

func TestRunSoak_InvalidOptions(t *testing.T) {
	a := newApp(&bytes.Buffer{})
	err := a.runSoak(context.Background(), soakOptions{workers: 0, keys: 1, duration: time.Second})
	var usageErr *usageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestRunSoak_InvalidCacheConfig(t *testing.T) {
	a := newApp(&bytes.Buffer{})
	a.cfg.Cache.MaxSize = 0
	err := a.runSoak(context.Background(), soakOptions{workers: 1, keys: 1, duration: time.Millisecond})
	assert.ErrorIs(t, err, xlru.ErrInvalidSize)
}

func TestUsageError(t *testing.T) {
	inner := errors.New("inner")
	err := &usageError{msg: "outer", err: inner}
	assert.Equal(t, "outer: inner", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", (&usageError{msg: "plain"}).Error())
}
