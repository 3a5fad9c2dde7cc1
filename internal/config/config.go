package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Compare  CompareConfig  `yaml:"compare"`
	Logs     LogsConfig     `yaml:"logs"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CompareConfig drives the generative face-ranking collaborator.
type CompareConfig struct {
	APIKey        string        `yaml:"api_key"`
	Model         string        `yaml:"model"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxCandidates int           `yaml:"max_candidates"`
	WorkerCount   int           `yaml:"worker_count"`
}

type LogsConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
// A missing file is not an error: the built-in development defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

// setDefaults fills the hardcoded development fallbacks. They point at a
// local stack with a permissive posture and are not production-safe.
func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "sentinel"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "sentinel"
	}
	if cfg.Database.Password == "" {
		cfg.Database.Password = "sentinel"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.NATS.URL == "" {
		cfg.NATS.URL = "nats://localhost:4222"
	}
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = "localhost:9000"
	}
	if cfg.MinIO.AccessKey == "" {
		cfg.MinIO.AccessKey = "minioadmin"
	}
	if cfg.MinIO.SecretKey == "" {
		cfg.MinIO.SecretKey = "minioadmin"
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "sentinel-frames"
	}
	if cfg.Compare.Model == "" {
		cfg.Compare.Model = "gemini-2.5-flash"
	}
	if cfg.Compare.Timeout == 0 {
		cfg.Compare.Timeout = 30 * time.Second
	}
	if cfg.Compare.MaxCandidates == 0 {
		cfg.Compare.MaxCandidates = 16
	}
	if cfg.Compare.WorkerCount == 0 {
		cfg.Compare.WorkerCount = 2
	}
	if cfg.Logs.DefaultLimit == 0 {
		cfg.Logs.DefaultLimit = 100
	}
	if cfg.Logs.MaxLimit == 0 {
		cfg.Logs.MaxLimit = 500
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SENTINEL_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SENTINEL_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("SENTINEL_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("SENTINEL_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("SENTINEL_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("SENTINEL_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("SENTINEL_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SENTINEL_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("SENTINEL_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("SENTINEL_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("SENTINEL_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("SENTINEL_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("SENTINEL_COMPARE_API_KEY"); v != "" {
		cfg.Compare.APIKey = v
	}
	if v := os.Getenv("SENTINEL_COMPARE_MODEL"); v != "" {
		cfg.Compare.Model = v
	}
	if v := os.Getenv("SENTINEL_COMPARE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Compare.WorkerCount = n
		}
	}
	if v := os.Getenv("SENTINEL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
