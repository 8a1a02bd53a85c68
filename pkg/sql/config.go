package lsql

import (
	"time"

	lconfig "github.com/atlasml/alignsync/pkg/config"
)

type Config struct {
	Engine       string        `env:"SQL_DB_ENGINE" envDefault:"sqlite3"`
	Address      string        `env:"SQL_DB_ADDRESS" envDefault:"data/alignsync.db"`
	MaxLifetime  time.Duration `env:"SQL_DB_MAX_LIFETIME" envDefault:"30m"`
	MaxIdleConns int           `env:"SQL_DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns int           `env:"SQL_DB_MAX_OPEN_CONNS" envDefault:"20"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) FullAddress() string {
	return cfg.Address
}
