package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DASHBOARD_"

// Config represents the complete dashboard configuration
type Config struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Poll    PollConfig    `json:"poll" yaml:"poll"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// BackendConfig locates the reporting API
type BackendConfig struct {
	URL     string   `json:"url" yaml:"url"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig controls the dashboard's own HTTP server
type ServerConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	Port          int    `json:"port" yaml:"port"`
	VisibleOnLAN  bool   `json:"visible_on_lan" yaml:"visible_on_lan"`
	RefreshOnLoad bool   `json:"refresh_on_load" yaml:"refresh_on_load"`
}

// PollConfig sets the background refresh cadence. Zero disables polling.
type PollConfig struct {
	Interval Duration `json:"interval" yaml:"interval"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // console|json
}

// Duration is a time.Duration written as a string such as "5s" or "1m".
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("backend.url must be an http(s) URL, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Poll.Interval < 0 {
		return fmt.Errorf("poll.interval must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// ListenAddr is the address the server binds. Without visible_on_lan the
// server only listens on loopback whatever addr says.
func (c *Config) ListenAddr() string {
	host := "127.0.0.1"
	if c.Server.VisibleOnLAN {
		host = c.Server.Addr
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// ApplyEnv overrides fields from DASHBOARD_* environment variables.
// Unset or unparsable values leave the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(k string) string { return strings.TrimSpace(getenv(EnvPrefix + k)) }

	if v := env("BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	envDuration(env("BACKEND_TIMEOUT"), &c.Backend.Timeout)
	if v := env("ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := env("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	envBool(env("VISIBLE_ON_LAN"), &c.Server.VisibleOnLAN)
	envBool(env("REFRESH_ON_LOAD"), &c.Server.RefreshOnLoad)
	envDuration(env("POLL_INTERVAL"), &c.Poll.Interval)
	if v := env("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

func envDuration(v string, dst *Duration) {
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = Duration(d)
	}
}

func envBool(v string, dst *bool) {
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		*dst = true
	case "0", "false", "f", "no", "n", "off":
		*dst = false
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://127.0.0.1:5000",
			Timeout: Duration(10 * time.Second),
		},
		Server: ServerConfig{
			Addr:          "0.0.0.0",
			Port:          8080,
			RefreshOnLoad: true,
		},
		Poll: PollConfig{
			Interval: Duration(time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
