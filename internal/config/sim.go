package config

import "github.com/caarlos0/env/v11"

// SimConfig drives cmd/sim-player, the scripted player used for smoke
// testing a running server.
type SimConfig struct {
	BaseURL      string `env:"SIM_BASE_URL" envDefault:"http://localhost:8080"`
	PlayerName   string `env:"SIM_PLAYER" envDefault:"sim"`
	Phone        string `env:"SIM_PHONE" envDefault:"+5500000000000"`
	DepositCents int64  `env:"SIM_DEPOSIT_CENTS" envDefault:"100000"`
	Bets         int    `env:"SIM_BETS" envDefault:"20"`
}

func LoadSim() (SimConfig, error) {
	var cfg SimConfig
	err := env.Parse(&cfg)
	return cfg, err
}
