package config

import (
	"fmt"
	"strings"
)

const (
	devEnv        = "DEV"
	productionEnv = "PROD"
)

type EnvVars struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppName  string `env:"APP_NAME" envDefault:"Recipe Box"`
	Env      string `env:"ENV" envDefault:"DEV"`
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

// GetAppURL returns the public base URL of the application without a trailing slash.
func (e EnvVars) GetAppURL() string {
	return strings.TrimRight(e.AppURL, "/")
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return devEnv
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// IsProduction is true for PROD and PRODUCTION. Cookies are only marked secure in production.
func (e EnvVars) IsProduction() bool {
	env := e.GetEnv()
	return env == productionEnv || env == "PRODUCTION"
}
