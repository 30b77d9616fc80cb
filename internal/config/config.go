package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Scrape   Scrape
	Server   Server
	Redis    Redis
	Postgres Postgres
	Bot      Bot
	Asynq    Asynq
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"scratch-tracker"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
