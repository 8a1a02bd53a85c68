package syncer

import (
	lconfig "github.com/atlasml/alignsync/pkg/config"
)

type Config struct {
	FetchWorkers int `env:"SYNC_FETCH_WORKERS" envDefault:"10"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
