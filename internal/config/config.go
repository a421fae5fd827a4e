package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ListenerConfig holds the UDP ingest settings.
type ListenerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	QueueSize int    `yaml:"queue_size"`
}

// DecoderConfig holds the template-aware decoder settings.
type DecoderConfig struct {
	// PendingRetention is how long, in seconds, a packet may wait for its
	// template before it is dropped.
	PendingRetention int `yaml:"pending_retention"`
	// PendingLimit bounds the pending set; the oldest entry is evicted when
	// a new packet arrives at the limit.
	PendingLimit int `yaml:"pending_limit"`
	// RecordQueueSize is the capacity of the decoded-records channel feeding
	// the correlator.
	RecordQueueSize int `yaml:"record_queue_size"`
}

// PostgresConfig holds the connection parameters for the flow store.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ClickHouseConfig holds the connection parameters for the optional
// append-only event archive.
type ClickHouseConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	BatchSize int    `yaml:"batch_size"`
}

// NATSConfig holds the settings for the optional merged-flow publisher.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// APIConfig holds the listen addresses for the query API server.
type APIConfig struct {
	GrpcListenAddr string `yaml:"grpc_listen_addr"`
	HttpListenAddr string `yaml:"http_listen_addr"`
}

// ServiceDef is one interesting (protocol, port, label) triple from the
// config file. An empty list falls back to the built-in set.
type ServiceDef struct {
	Protocol uint8  `yaml:"protocol"`
	Port     uint16 `yaml:"port"`
	Label    string `yaml:"label"`
}

// AnalyticsConfig holds the graph-building settings.
type AnalyticsConfig struct {
	OutputDir string       `yaml:"output_dir"`
	Services  []ServiceDef `yaml:"services"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Listener  ListenerConfig   `yaml:"listener"`
	Decoder   DecoderConfig    `yaml:"decoder"`
	Store     PostgresConfig   `yaml:"store"`
	Archive   ClickHouseConfig `yaml:"archive"`
	Publisher NATSConfig       `yaml:"publisher"`
	API       APIConfig        `yaml:"api"`
	Analytics AnalyticsConfig  `yaml:"analytics"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct with defaults applied and values validated.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listener.Host == "" {
		c.Listener.Host = "0.0.0.0"
	}
	if c.Listener.QueueSize <= 0 {
		c.Listener.QueueSize = 4096
	}
	if c.Decoder.PendingRetention <= 0 {
		c.Decoder.PendingRetention = 3600
	}
	if c.Decoder.PendingLimit <= 0 {
		c.Decoder.PendingLimit = 8192
	}
	if c.Decoder.RecordQueueSize <= 0 {
		c.Decoder.RecordQueueSize = 4096
	}
	if c.Store.SSLMode == "" {
		c.Store.SSLMode = "disable"
	}
	if c.Archive.BatchSize <= 0 {
		c.Archive.BatchSize = 1000
	}
	if c.Analytics.OutputDir == "" {
		c.Analytics.OutputDir = "."
	}
}

// Validate reports configuration errors before any component starts.
func (c *Config) Validate() error {
	if err := checkPort(c.Listener.Port); err != nil {
		return fmt.Errorf("listener: %w", err)
	}
	if c.Store.Host == "" {
		return fmt.Errorf("store: host must be set")
	}
	if err := checkPort(c.Store.Port); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.Store.Database == "" {
		return fmt.Errorf("store: database must be set")
	}
	if c.Archive.Enabled {
		if c.Archive.Host == "" {
			return fmt.Errorf("archive: host must be set when enabled")
		}
		if err := checkPort(c.Archive.Port); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}
	if c.Publisher.Enabled {
		if c.Publisher.URL == "" {
			return fmt.Errorf("publisher: url must be set when enabled")
		}
		if c.Publisher.Subject == "" {
			return fmt.Errorf("publisher: subject must be set when enabled")
		}
	}
	return nil
}

func checkPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%d is not a valid port number", port)
	}
	return nil
}
