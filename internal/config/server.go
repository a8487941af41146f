package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	DBPath   string `env:"DB_PATH" envDefault:"basketbet.db"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
