// internal/workers/communication/notify-decision/service.go
package notifydecision

import (
	"context"
	"fmt"
	"time"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/common/validation"
	"kyp-credit-workers/internal/models"
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendPlainText(ctx context.Context, from, to, subject, body string) (string, error)
}

// SMSSender is satisfied by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message, senderID string) (string, error)
}

type Service struct {
	config *Config
	logger logger.Logger
	email  EmailSender
	sms    SMSSender
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		email:  deps.Email,
		sms:    deps.SMS,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, *errors.StandardError) {
	if input.Status != models.StatusSuccess {
		return nil, errors.NewInternalError(
			fmt.Errorf("upstream report generation did not succeed: status %q", input.Status))
	}
	if input.Markdown == "" {
		return nil, errors.NewInternalError(fmt.Errorf("empty report body"))
	}

	company := input.Report.ExecutiveSummary.Company
	subject := fmt.Sprintf("Credit decision: %s - %s", company.LegalName, input.FinalDecision)

	emailID, err := s.email.SendPlainText(ctx,
		s.config.FromEmail, s.config.CreditDeskEmail, subject, input.Markdown)
	if err != nil {
		return nil, errors.NewNotificationSendError("email", err)
	}

	s.logger.Info("decision email delivered", map[string]interface{}{
		"to":        s.config.CreditDeskEmail,
		"decision":  input.FinalDecision,
		"messageId": emailID,
	})

	output := &Output{
		Status:     models.StatusSuccess,
		EmailSent:  true,
		EmailID:    emailID,
		NotifiedAt: time.Now().UTC(),
	}

	// SMS is best-effort: a failed SMS must not re-trigger the email on retry.
	if s.sms != nil && s.config.SMSEnabled && input.Contact.Phone != "" {
		if !validation.ValidatePhone(input.Contact.Phone) {
			s.logger.Warn("skipping SMS, invalid phone number", map[string]interface{}{
				"phone": input.Contact.Phone,
			})
			return output, nil
		}
		smsID, err := s.sms.SendSMS(ctx, input.Contact.Phone, s.smsText(input), s.config.SMSSenderID)
		if err != nil {
			s.logger.Warn("decision SMS failed", map[string]interface{}{
				"phone": input.Contact.Phone,
				"error": err.Error(),
			})
		} else {
			output.SMSSent = true
			output.SMSID = smsID
		}
	}

	return output, nil
}

func (s *Service) smsText(input *Input) string {
	es := input.Report.ExecutiveSummary
	return fmt.Sprintf("Credit analysis for %s: %s (risk %s, score %.1f/10)",
		es.Company.LegalName, input.FinalDecision, es.RiskLevel, es.RiskScore)
}
