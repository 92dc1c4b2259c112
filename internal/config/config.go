package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type EngineConfig struct {
	// DefaultMethod is used when a request or batch run names none.
	DefaultMethod string `yaml:"default_method"`
	// SystemPath optionally points at a YAML system spec; empty means the
	// built-in anxiety system.
	SystemPath string `yaml:"system_path"`
	// BatchWorkers is the batch worker pool size.
	BatchWorkers int `yaml:"batch_workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "",
		},
		Engine: EngineConfig{
			DefaultMethod: "centroid",
			BatchWorkers:  4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Engine.BatchWorkers < 1 {
		cfg.Engine.BatchWorkers = 1
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FUZZDX_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FUZZDX_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FUZZDX_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FUZZDX_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("FUZZDX_DEFAULT_METHOD"); v != "" {
		cfg.Engine.DefaultMethod = v
	}
	if v := os.Getenv("FUZZDX_SYSTEM_PATH"); v != "" {
		cfg.Engine.SystemPath = v
	}
	if v := os.Getenv("FUZZDX_BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.BatchWorkers = n
		}
	}
	if v := os.Getenv("FUZZDX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
