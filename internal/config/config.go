// config - источник загрузки конфигурации клиента ридера.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string       `yaml:"env" env:"ENV" env-default:"local"`
	API    APIConfig    `yaml:"api"`
	Limits LimitsConfig `yaml:"limits"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// APIConfig — параметры доступа к REST-бэкенду ридера.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080"`
	// TokenEnv — имя env-переменной с bearer-токеном (сам токен в конфиге не хранится).
	TokenEnv string        `yaml:"token_env" env:"API_TOKEN_ENV" env-default:"READER_API_TOKEN"`
	Timeout  time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
}

// LimitsConfig — лимиты страничной выборки.
type LimitsConfig struct {
	PageSize int `yaml:"page_size" env:"PAGE_SIZE" env-default:"20"`
	Max      int `yaml:"max" env:"PAGE_SIZE_MAX" env-default:"100"`
}

// HTTPConfig — адрес, на котором поднимается dev-бэкенд (reader-stubd).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	// Token — единственный валидный bearer-токен стаба.
	Token string `yaml:"token" env:"HTTP_TOKEN" env-default:"dev-token"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
