package datasource

import lconfig "github.com/atlasml/alignsync/pkg/config"

type Config struct {
	WandBBaseUrl   string `env:"WANDB_BASE_URL" envDefault:"https://api.wandb.ai"`
	WandBApiKey    string `env:"WANDB_API_KEY"`
	SwanLabBaseUrl string `env:"SWANLAB_BASE_URL" envDefault:"https://api.swanlab.cn"`
	SwanLabApiKey  string `env:"SWANLAB_API_KEY"`
	PageSize       int    `env:"SOURCE_PAGE_SIZE" envDefault:"1000"`
	RetryAttempts  uint   `env:"SOURCE_RETRY_ATTEMPTS" envDefault:"3"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
