package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Auth struct {
	JWTSecret string `yaml:"jwtSecret"` // секрет auth-сервиса платформы (HS256)
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // consult-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Storage struct {
	Backend    string `yaml:"backend"`    // memory|postgres
	DSN        string `yaml:"dsn"`        // только для postgres
	SessionTTL string `yaml:"sessionTTL"` // "0" — сессии живут до рестарта
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Auth    Auth    `yaml:"auth"`
	Logging Logging `yaml:"logging"`
	Storage Storage `yaml:"storage"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required")
	}
	// установка дефолтов, если значения не указаны
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.Backend == "postgres" && c.Storage.DSN == "" {
		return errors.New("storage.dsn is required for postgres backend")
	}
	if c.Storage.SessionTTL != "" {
		d, err := time.ParseDuration(c.Storage.SessionTTL)
		if err != nil {
			return fmt.Errorf("storage.sessionTTL: %w", err)
		}
		if d < 0 {
			return errors.New("storage.sessionTTL must not be negative")
		}
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "consult-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	return nil
}

// TTL сессий; 0 — без истечения. Значение уже проверено в validate().
func (s Storage) TTL() time.Duration {
	if s.SessionTTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.SessionTTL)
	return d
}
