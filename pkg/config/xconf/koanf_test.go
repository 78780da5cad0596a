package xconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheSection struct {
	MaxSize int           `koanf:"max_size"`
	TTL     time.Duration `koanf:"ttl"`
	Enabled bool          `koanf:"enabled"`
}

type level string

func (l *level) UnmarshalText(b []byte) error {
	*l = level("L:" + string(b))
	return nil
}

type appConfig struct {
	Name  string       `koanf:"name"`
	Level level        `koanf:"level"`
	Cache cacheSection `koanf:"cache"`
}

const testYAML = `
name: demo
level: debug
cache:
  max_size: 16
  ttl: 3s
`

const testJSON = `{"name": "demo", "level": "debug", "cache": {"max_size": 16, "ttl": "3s"}}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	tests := []struct {
		file    string
		content string
		format  Format
	}{
		{"app.yaml", testYAML, FormatYAML},
		{"app.YML", testYAML, FormatYAML},
		{"app.json", testJSON, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := New(path)
			require.NoError(t, err)
			assert.Equal(t, path, cfg.Path())
			assert.Equal(t, tt.format, cfg.Format())

			var got appConfig
			require.NoError(t, cfg.Unmarshal("", &got))
			assert.Equal(t, "demo", got.Name)
			assert.Equal(t, level("L:debug"), got.Level)
			assert.Equal(t, 16, got.Cache.MaxSize)
			assert.Equal(t, 3*time.Second, got.Cache.TTL)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New("app.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = New(writeFile(t, "bad.json", "{"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, "demo", cfg.Client().String("name"))
	assert.Equal(t, 16, cfg.Client().Int("cache.max_size"))

	_, err = NewFromBytes([]byte(testYAML), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewFromBytes_Empty(t *testing.T) {
	cfg, err := NewFromBytes(nil, FormatJSON)
	require.NoError(t, err)

	got := cacheSection{MaxSize: 7}
	require.NoError(t, cfg.Unmarshal("cache", &got))
	assert.Equal(t, 7, got.MaxSize)
}

func TestUnmarshal_KeepsDefaults(t *testing.T) {
	cfg, err := NewFromBytes([]byte("cache:\n  ttl: 500ms\n"), FormatYAML)
	require.NoError(t, err)

	got := cacheSection{MaxSize: 1024, TTL: time.Minute, Enabled: true}
	require.NoError(t, cfg.Unmarshal("cache", &got))
	assert.Equal(t, cacheSection{MaxSize: 1024, TTL: 500 * time.Millisecond, Enabled: true}, got)
}

func TestUnmarshal_WeakTyping(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"max_size": "32", "enabled": "true"}`), FormatJSON)
	require.NoError(t, err)

	var got cacheSection
	require.NoError(t, cfg.Unmarshal("", &got))
	assert.Equal(t, 32, got.MaxSize)
	assert.True(t, got.Enabled)
}

func TestUnmarshal_Strict(t *testing.T) {
	data := []byte("cache:\n  max_size: 8\n  mxa_size: 9\n")

	lax, err := NewFromBytes(data, FormatYAML)
	require.NoError(t, err)
	var got cacheSection
	require.NoError(t, lax.Unmarshal("cache", &got))
	assert.Equal(t, 8, got.MaxSize)

	strict, err := NewFromBytes(data, FormatYAML, WithStrict(true))
	require.NoError(t, err)
	err = strict.Unmarshal("cache", &got)
	assert.ErrorIs(t, err, ErrUnmarshalFailed)
}

func TestUnmarshal_BadDuration(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"ttl": "soon"}`), FormatJSON)
	require.NoError(t, err)

	var got cacheSection
	assert.ErrorIs(t, cfg.Unmarshal("", &got), ErrUnmarshalFailed)
}

func TestOptions(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"cache": {"size": 4}}`), FormatJSON,
		nil, WithDelim("/"), WithTag("json"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Client().Int("cache/size"))

	var got struct {
		Cache struct {
			Size int `json:"size"`
		} `json:"cache"`
	}
	require.NoError(t, cfg.Unmarshal("", &got))
	assert.Equal(t, 4, got.Cache.Size)

	o := defaultOptions()
	WithDelim("")(o)
	WithTag("")(o)
	assert.Equal(t, ".", o.Delim)
	assert.Equal(t, "koanf", o.Tag)
}
