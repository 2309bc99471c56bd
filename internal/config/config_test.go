package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/cargo/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Render.ClientScript != DefaultClientScript {
		t.Errorf("Render.ClientScript = %q, want %q", cfg.Render.ClientScript, DefaultClientScript)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E120") {
		t.Errorf("Load(missing) error = %v, want E120", err)
	}

	writeConfig(t, tmpDir, `{
  "name": "shop",
  "server": {
    "host": "0.0.0.0",
    "port": 8080
  },
  "render": {
    "pretty": true,
    "styles": ["/app.css"]
  },
  "islands": {
    "scriptPrefix": "/assets/island-"
  },
  "metrics": {
    "enabled": true
  },
  "log": {
    "level": "debug",
    "format": "json"
  }
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "shop" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if got := cfg.Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", got)
	}
	if got := cfg.URL(); got != "http://0.0.0.0:8080" {
		t.Errorf("URL() = %q", got)
	}
	if !cfg.Render.Pretty || cfg.Render.Indent != "  " {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if got := cfg.IslandScript("counter"); got != "/assets/island-counter.js" {
		t.Errorf("IslandScript() = %q", got)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if cfg.ReadTimeout() != 10*time.Second || cfg.ShutdownTimeout() != 5*time.Second {
		t.Errorf("timeouts = %v, %v", cfg.ReadTimeout(), cfg.ShutdownTimeout())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"server": {`)

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E121") {
		t.Errorf("error = %v, want E121", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		subject string
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "server.port"},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "server.readTimeout"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			ce, ok := err.(*errors.CargoError)
			if !ok {
				t.Fatalf("error type = %T", err)
			}
			if ce.Code != "E122" || ce.Subject != tt.subject {
				t.Errorf("error = %s (subject %q), want E122 on %q", ce.Code, ce.Subject, tt.subject)
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"server": {"port": 99999}}`)

	if _, err := Load(tmpDir); !errors.HasCode(err, "E122") {
		t.Errorf("error = %v, want E122", err)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved"
	cfg.Server.Port = 4000
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Name != "saved" || loaded.Server.Port != 4000 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{}`)

	nested := filepath.Join(tmpDir, "pages", "blog")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(tmpDir)
	if root != want {
		t.Errorf("FindProjectRoot() = %q, want %q", root, want)
	}

	if !Exists(tmpDir) {
		t.Error("Exists() = false for directory with cargo.json")
	}
	if Exists(nested) {
		t.Error("Exists() = true for directory without cargo.json")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "msg=hello"},
		{"json", `"msg":"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := New()
			cfg.Log.Format = tt.format
			cfg.Log.Level = "warn"

			var buf bytes.Buffer
			logger := cfg.NewLogger(&buf)
			logger.Info("dropped")
			logger.Warn("hello")

			out := buf.String()
			if strings.Contains(out, "dropped") {
				t.Error("info record should be filtered at warn level")
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}
