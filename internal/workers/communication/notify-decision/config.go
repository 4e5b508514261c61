// internal/workers/communication/notify-decision/config.go
package notifydecision

import (
	"fmt"
	"time"

	"kyp-credit-workers/internal/common/config"
)

type Config struct {
	Timeout         time.Duration
	FromEmail       string
	CreditDeskEmail string
	SMSEnabled      bool
	SMSSenderID     string
}

func LoadConfig(nc config.NotificationConfig) *Config {
	return &Config{
		Timeout:         30 * time.Second,
		FromEmail:       nc.AWS.SES.FromEmail,
		CreditDeskEmail: nc.CreditDeskEmail,
		SMSEnabled:      nc.AWS.SNS.Enabled,
		SMSSenderID:     nc.AWS.SNS.DefaultSMSSenderID,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	if c.CreditDeskEmail == "" {
		return fmt.Errorf("credit desk email is required")
	}
	return nil
}
