package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Backend.URL)
	assert.Equal(t, Duration(10*time.Second), cfg.Backend.Timeout)
	assert.False(t, cfg.Server.VisibleOnLAN)
	assert.True(t, cfg.Server.RefreshOnLoad)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing backend url",
			mutate:  func(c *Config) { c.Backend.URL = "" },
			wantErr: true,
			errMsg:  "backend.url",
		},
		{
			name:    "backend url without scheme",
			mutate:  func(c *Config) { c.Backend.URL = "localhost:5000" },
			wantErr: true,
			errMsg:  "backend.url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Backend.Timeout = 0 },
			wantErr: true,
			errMsg:  "backend.timeout must be positive",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
			errMsg:  "server.port",
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *Config) { c.Poll.Interval = Duration(-time.Second) },
			wantErr: true,
			errMsg:  "poll.interval",
		},
		{
			name:   "polling disabled",
			mutate: func(c *Config) { c.Poll.Interval = 0 },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backend.URL = "http://10.0.0.5:5000"
			cfg.Poll.Interval = Duration(30 * time.Second)
			cfg.Server.VisibleOnLAN = true
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: http://reports:5000\npoll:\n  interval: 15s\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://reports:5000", cfg.Backend.URL)
	assert.Equal(t, Duration(15*time.Second), cfg.Poll.Interval)
	assert.Equal(t, Duration(10*time.Second), cfg.Backend.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	bad := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("poll:\n  interval: soon\n"), 0644))
	_, err = LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("server:\n  port: 0\n"), 0644))
	_, err = LoadFromFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DASHBOARD_BACKEND_URL":     "http://reports:5000",
		"DASHBOARD_BACKEND_TIMEOUT": "3s",
		"DASHBOARD_PORT":            "9090",
		"DASHBOARD_VISIBLE_ON_LAN":  "yes",
		"DASHBOARD_REFRESH_ON_LOAD": "off",
		"DASHBOARD_POLL_INTERVAL":   "not-a-duration",
		"DASHBOARD_LOG_FORMAT":      "json",
	}

	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "http://reports:5000", cfg.Backend.URL)
	assert.Equal(t, Duration(3*time.Second), cfg.Backend.Timeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.VisibleOnLAN)
	assert.False(t, cfg.Server.RefreshOnLoad)
	assert.Equal(t, Duration(time.Minute), cfg.Poll.Interval, "unparsable values are ignored")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestListenAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = "0.0.0.0"
	cfg.Server.Port = 8080
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())

	cfg.Server.VisibleOnLAN = true
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())

	cfg.Server.Addr = ""
	assert.Equal(t, ":8080", cfg.ListenAddr())
}
