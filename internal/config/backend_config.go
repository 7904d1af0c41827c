package config

import (
	"strings"
	"time"
)

type Backend struct {
	BaseURL   string        `env:"API_BASE_URL" envDefault:"http://localhost:3001/api"`
	SecretKey string        `env:"API_SECRET_KEY"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

var _ BackendConfig = Backend{}

func (b Backend) GetAPIBaseURL() string {
	return strings.TrimRight(b.BaseURL, "/")
}

func (b Backend) GetAPISecretKey() string {
	return b.SecretKey
}

func (b Backend) GetAPITimeout() time.Duration {
	return b.Timeout
}
