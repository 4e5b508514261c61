// internal/workers/communication/notify-decision/models.go
package notifydecision

import (
	"time"

	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/models"
)

type Input struct {
	Status        string          `json:"status"`
	FinalDecision models.Decision `json:"final_decision"`
	Report        models.Report   `json:"credit_report"`
	// Markdown is the rendered report from the synthesis stage, delivered
	// verbatim as the email body.
	Markdown string  `json:"report"`
	Contact  Contact `json:"notification_contact,omitempty"`
}

// Contact carries optional delivery targets beyond the credit desk.
type Contact struct {
	Phone string `json:"phone,omitempty"` // E.164
}

type Output struct {
	Status     string    `json:"status"`
	EmailSent  bool      `json:"email_sent"`
	EmailID    string    `json:"email_message_id,omitempty"`
	SMSSent    bool      `json:"sms_sent"`
	SMSID      string    `json:"sms_message_id,omitempty"`
	NotifiedAt time.Time `json:"notified_at"`
}

type ServiceDependencies struct {
	Logger logger.Logger
	Email  EmailSender
	SMS    SMSSender
}
