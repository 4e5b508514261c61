// internal/workers/communication/notify-decision/handler_test.go
package notifydecision

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeEmailSender struct {
	from, to, subject, body string
	calls                   int
	err                     error
}

func (f *fakeEmailSender) SendPlainText(_ context.Context, from, to, subject, body string) (string, error) {
	f.calls++
	f.from, f.to, f.subject, f.body = from, to, subject, body
	if f.err != nil {
		return "", f.err
	}
	return "ses-message-1", nil
}

type fakeSMSSender struct {
	phone, message, senderID string
	calls                    int
	err                      error
}

func (f *fakeSMSSender) SendSMS(_ context.Context, phone, message, senderID string) (string, error) {
	f.calls++
	f.phone, f.message, f.senderID = phone, message, senderID
	if f.err != nil {
		return "", f.err
	}
	return "sns-message-1", nil
}

func testConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		FromEmail:       "noreply@kyp.example.com",
		CreditDeskEmail: "credit-desk@kyp.example.com",
		SMSEnabled:      true,
		SMSSenderID:     "KYPCREDIT",
	}
}

func newTestHandler(t *testing.T, email EmailSender, sms SMSSender) *Handler {
	return NewHandler(testConfig(), ServiceDependencies{
		Logger: logger.NewTestLogger(t),
		Email:  email,
		SMS:    sms,
	})
}

func createDecisionInput() *Input {
	return &Input{
		Status:        models.StatusSuccess,
		FinalDecision: models.DecisionApprove,
		Report: models.Report{
			ExecutiveSummary: models.ExecutiveSummary{
				Company: models.CompanyProfile{
					TaxID:     "12345678000190",
					LegalName: "Empresa Exemplo LTDA",
					Sector:    "retail",
				},
				RiskLevel: models.RiskLow,
				RiskScore: 8.5,
			},
		},
		Markdown: "# CREDIT ANALYSIS REPORT\n...",
	}
}

// ==========================
// Email Delivery Tests
// ==========================

func TestExecuteSendsReportToCreditDesk(t *testing.T) {
	email := &fakeEmailSender{}
	handler := newTestHandler(t, email, nil)

	output, stageErr := handler.Execute(context.Background(), createDecisionInput())
	require.Nil(t, stageErr)

	assert.True(t, output.EmailSent)
	assert.Equal(t, "ses-message-1", output.EmailID)
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, "noreply@kyp.example.com", email.from)
	assert.Equal(t, "credit-desk@kyp.example.com", email.to)
	assert.Equal(t, "Credit decision: Empresa Exemplo LTDA - APPROVE", email.subject)
	assert.Equal(t, "# CREDIT ANALYSIS REPORT\n...", email.body)
	assert.False(t, output.NotifiedAt.IsZero())
}

func TestExecuteEmailFailureIsRetryable(t *testing.T) {
	email := &fakeEmailSender{err: fmt.Errorf("ses throttled")}
	handler := newTestHandler(t, email, nil)

	_, stageErr := handler.Execute(context.Background(), createDecisionInput())
	require.NotNil(t, stageErr)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stageErr.Code)
	assert.True(t, stageErr.Retryable)
}

// ==========================
// SMS Delivery Tests
// ==========================

func TestExecuteSendsSMSWhenPhonePresent(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	handler := newTestHandler(t, email, sms)

	input := createDecisionInput()
	input.Contact.Phone = "+5511999990000"

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.True(t, output.SMSSent)
	assert.Equal(t, "sns-message-1", output.SMSID)
	assert.Equal(t, "+5511999990000", sms.phone)
	assert.Equal(t, "KYPCREDIT", sms.senderID)
	assert.Equal(t, "Credit analysis for Empresa Exemplo LTDA: APPROVE (risk LOW, score 8.5/10)", sms.message)
}

func TestExecuteSkipsSMSWithoutPhone(t *testing.T) {
	sms := &fakeSMSSender{}
	handler := newTestHandler(t, &fakeEmailSender{}, sms)

	output, stageErr := handler.Execute(context.Background(), createDecisionInput())
	require.Nil(t, stageErr)

	assert.False(t, output.SMSSent)
	assert.Equal(t, 0, sms.calls)
}

func TestExecuteSkipsSMSOnInvalidPhone(t *testing.T) {
	sms := &fakeSMSSender{}
	handler := newTestHandler(t, &fakeEmailSender{}, sms)

	input := createDecisionInput()
	input.Contact.Phone = "not-a-phone"

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.Equal(t, 0, sms.calls)
}

func TestExecuteSMSFailureDoesNotFailJob(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{err: fmt.Errorf("sns unavailable")}
	handler := newTestHandler(t, email, sms)

	input := createDecisionInput()
	input.Contact.Phone = "+5511999990000"

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.Empty(t, output.SMSID)
}

// ==========================
// Upstream Validation Tests
// ==========================

func TestExecuteRejectsFailedUpstream(t *testing.T) {
	email := &fakeEmailSender{}
	handler := newTestHandler(t, email, nil)

	input := createDecisionInput()
	input.Status = models.StatusError

	_, stageErr := handler.Execute(context.Background(), input)
	require.NotNil(t, stageErr)
	assert.Equal(t, errors.ErrCodeInternalError, stageErr.Code)
	assert.Equal(t, 0, email.calls)
}

func TestExecuteRejectsEmptyReport(t *testing.T) {
	email := &fakeEmailSender{}
	handler := newTestHandler(t, email, nil)

	input := createDecisionInput()
	input.Markdown = ""

	_, stageErr := handler.Execute(context.Background(), input)
	require.NotNil(t, stageErr)
	assert.Equal(t, errors.ErrCodeInternalError, stageErr.Code)
	assert.Equal(t, 0, email.calls)
}

// ==========================
// Config Tests
// ==========================

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, cfg.Validate())

	cfg.FromEmail = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig()
	cfg.CreditDeskEmail = ""
	assert.Error(t, cfg.Validate())
}
