package env

import (
	"errors"
	"os"

	"lootcase_backend/internal/config"
)

const (
	httpHostName = "HTTP_HOST"
	httpPortName = "HTTP_PORT"
)

type httpConfig struct {
	host string
	port string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortName)
	if len(port) == 0 {
		return nil, errors.New("http port not found")
	}

	return &httpConfig{
		host: os.Getenv(httpHostName),
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.host + ":" + cfg.port
}
