package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
listener:
  host: "127.0.0.1"
  port: 2055
decoder:
  pending_retention: 60
store:
  host: "db.example.com"
  port: 5432
  username: "flows"
  password: "secret"
  database: "flowgraph"
publisher:
  enabled: true
  url: "nats://localhost:4222"
  subject: "flows"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Listener.Port != 2055 {
		t.Errorf("Expected listener port 2055, got %d", cfg.Listener.Port)
	}
	if cfg.Decoder.PendingRetention != 60 {
		t.Errorf("Expected pending retention 60, got %d", cfg.Decoder.PendingRetention)
	}
	if cfg.Store.Host != "db.example.com" {
		t.Errorf("Expected store host db.example.com, got %s", cfg.Store.Host)
	}
	if !cfg.Publisher.Enabled {
		t.Error("Expected publisher to be enabled")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
listener:
  port: 2055
store:
  host: "localhost"
  port: 5432
  database: "flowgraph"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Listener.Host != "0.0.0.0" {
		t.Errorf("Expected default listener host 0.0.0.0, got %s", cfg.Listener.Host)
	}
	if cfg.Listener.QueueSize != 4096 {
		t.Errorf("Expected default queue size 4096, got %d", cfg.Listener.QueueSize)
	}
	if cfg.Decoder.PendingRetention != 3600 {
		t.Errorf("Expected default pending retention 3600, got %d", cfg.Decoder.PendingRetention)
	}
	if cfg.Decoder.PendingLimit != 8192 {
		t.Errorf("Expected default pending limit 8192, got %d", cfg.Decoder.PendingLimit)
	}
	if cfg.Store.SSLMode != "disable" {
		t.Errorf("Expected default ssl mode disable, got %s", cfg.Store.SSLMode)
	}
	if cfg.Archive.BatchSize != 1000 {
		t.Errorf("Expected default archive batch size 1000, got %d", cfg.Archive.BatchSize)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "listener port out of range",
			content: `
listener:
  port: 70000
store:
  host: "localhost"
  port: 5432
  database: "flowgraph"
`,
		},
		{
			name: "missing store host",
			content: `
listener:
  port: 2055
store:
  port: 5432
  database: "flowgraph"
`,
		},
		{
			name: "missing store database",
			content: `
listener:
  port: 2055
store:
  host: "localhost"
  port: 5432
`,
		},
		{
			name: "publisher enabled without url",
			content: `
listener:
  port: 2055
store:
  host: "localhost"
  port: 5432
  database: "flowgraph"
publisher:
  enabled: true
  subject: "flows"
`,
		},
		{
			name: "archive enabled without host",
			content: `
listener:
  port: 2055
store:
  host: "localhost"
  port: 5432
  database: "flowgraph"
archive:
  enabled: true
  port: 9000
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
