// internal/workers/credit/extract-financial-data/config.go
package extractfinancialdata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
