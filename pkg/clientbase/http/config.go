package cbhttp

import (
	"time"

	lconfig "github.com/atlasml/alignsync/pkg/config"
)

type Config struct {
	Timeout        time.Duration `env:"CLIENT_HTTP_TIMEOUT" envDefault:"30s"`
	AvoidRedirects bool          `env:"CLIENT_HTTP_AVOID_REDIRECTS"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
