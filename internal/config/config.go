package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/cargo/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "cargo.json"

	// DefaultPort is the default HTTP port.
	DefaultPort = 3000

	// DefaultHost is the default HTTP host.
	DefaultHost = "localhost"

	// DefaultClientScript is the module that exports launch().
	DefaultClientScript = "/main.js"

	// DefaultIslandPrefix prefixes island module URLs: /island-<name>.js.
	DefaultIslandPrefix = "/island-"

	// DefaultMetricsPath is where the Prometheus handler is mounted.
	DefaultMetricsPath = "/metrics"

	// DefaultMetricsNamespace prefixes every metric name.
	DefaultMetricsNamespace = "cargo"
)

// Config represents the complete cargo.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP host configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains server-side rendering configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Islands contains island bootstrap configuration.
	Islands IslandsConfig `json:"islands,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP host settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// ReadTimeout bounds reading a request, e.g. "10s".
	ReadTimeout string `json:"readTimeout,omitempty"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "5s".
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// RenderConfig contains SSR settings.
type RenderConfig struct {
	// Pretty enables indented HTML output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indent string used when Pretty is set.
	Indent string `json:"indent,omitempty"`

	// Lang is the <html lang> attribute.
	Lang string `json:"lang,omitempty"`

	// ClientScript is the module URL that exports launch().
	ClientScript string `json:"clientScript,omitempty"`

	// Styles are stylesheet URLs linked from every page.
	Styles []string `json:"styles,omitempty"`
}

// IslandsConfig contains island bootstrap settings.
type IslandsConfig struct {
	// Dir is the directory holding built island modules.
	Dir string `json:"dir,omitempty"`

	// ScriptPrefix is prepended to an island name to form its module URL.
	ScriptPrefix string `json:"scriptPrefix,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for cargo.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E120").
				WithSubject(path).
				WithSuggestion("Create cargo.json or run without a config to use the defaults")
		}
		return nil, errors.New("E120").WithSubject(path).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E121").
			WithSubject(path).
			Wrap(err).
			WithSuggestion("Check that cargo.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E121").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").WithSubject(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "5s"
	}

	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
	if c.Render.Lang == "" {
		c.Render.Lang = "en"
	}
	if c.Render.ClientScript == "" {
		c.Render.ClientScript = DefaultClientScript
	}

	if c.Islands.Dir == "" {
		c.Islands.Dir = "dist"
	}
	if c.Islands.ScriptPrefix == "" {
		c.Islands.ScriptPrefix = DefaultIslandPrefix
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithSubject("server.port").
			WithDetail("Port must be between 0 and 65535")
	}
	for field, value := range map[string]string{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return errors.New("E122").
				WithSubject(field).
				WithDetail("Durations use Go syntax such as \"10s\" or \"1m30s\"").
				Wrap(err)
		}
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E122").
			WithSubject("metrics.path").
			WithDetail("The metrics path must start with '/'")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E122").
			WithSubject("log.level").
			WithDetail("Log level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E122").
			WithSubject("log.format").
			WithDetail("Log format must be \"text\" or \"json\"")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// IslandScript returns the module URL for the island called name.
func (c *Config) IslandScript(name string) string {
	return c.Islands.ScriptPrefix + name + ".js"
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// NewLogger builds a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing cargo.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E120").
				WithSubject(startDir).
				WithDetail("No cargo.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
