package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type API struct {
	BaseURL      string `yaml:"base_url"`
	Token        string `yaml:"token"`
	ProductGroup string `yaml:"product_group"`
	TimeoutMS    int    `yaml:"timeout_ms"`
}

type Limit struct {
	Requests int `yaml:"requests"`  // admissions per window
	WindowMS int `yaml:"window_ms"` // sliding window duration
}

type Observability struct {
	LogLevel    string `yaml:"log_level"`    // "debug","info","warn","error"
	MetricsAddr string `yaml:"metrics_addr"` // e.g. ":9090"; empty disables the endpoint
}

type Root struct {
	API           API           `yaml:"api"`
	Limit         Limit         `yaml:"limit"`
	Observability Observability `yaml:"observability"`
}

func (a API) Timeout() time.Duration {
	if a.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

func (l Limit) Window() time.Duration {
	if l.WindowMS <= 0 {
		return time.Second
	}
	return time.Duration(l.WindowMS) * time.Millisecond
}

func Load(path string) (*Root, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Root
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://ismp.crpt.ru/api/v3"
	}
	if cfg.API.Token == "" {
		cfg.API.Token = os.Getenv("CRPT_TOKEN")
	}
	if cfg.Limit.Requests <= 0 {
		cfg.Limit.Requests = 1
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	return &cfg, nil
}
