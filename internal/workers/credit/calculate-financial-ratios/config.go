// internal/workers/credit/calculate-financial-ratios/config.go
package calculatefinancialratios

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
