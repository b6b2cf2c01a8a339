// internal/workers/notification/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"errors"
	"testing"
	"time"

	"govmatch-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	Calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.Calls = append(m.Calls, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{}, nil
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.Calls = append(m.Calls, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

// ==========================
// Test Helper Functions
// ==========================

func setupHandler(t *testing.T, cfg *Config) (*Handler, sqlmock.Sqlmock, *MockSESService, *MockSNSService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}

	h := &Handler{
		config:      cfg,
		db:          db,
		logger:      logger.NewTestLogger(t),
		sesClient:   sesMock,
		snsClient:   snsMock,
		templateMap: defaultTemplates(),
	}
	return h, mock, sesMock, snsMock
}

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "noreply@govmatch.example",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}

func expectRecipient(mock sqlmock.Sqlmock, email, phone string) {
	mock.ExpectQuery("SELECT email, phone FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).AddRow(email, phone))
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_SendsEmailAndHighPrioritySMS(t *testing.T) {
	h, mock, sesMock, snsMock := setupHandler(t, createTestConfig())
	expectRecipient(mock, "owner@acme.example", "+15551234567")

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "user-1",
		RecipientType:    RecipientTypeUser,
		NotificationType: TypeNewMatch,
		OpportunityID:    "opp-1",
		Priority:         "high",
		Metadata: map[string]interface{}{
			"opportunityTitle": "IT Modernization Support",
			"matchScore":       94,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.NotEmpty(t, output.SentAt)

	require.Len(t, sesMock.Calls, 1)
	assert.Contains(t, *sesMock.Calls[0].Message.Body.Text.Data, "IT Modernization Support")
	assert.Contains(t, *sesMock.Calls[0].Message.Body.Text.Data, "94")

	require.Len(t, snsMock.Calls, 1)
	assert.Equal(t, "+15551234567", *snsMock.Calls[0].PhoneNumber)
}

func TestExecute_NoSMSForNormalPriority(t *testing.T) {
	h, mock, sesMock, snsMock := setupHandler(t, createTestConfig())
	expectRecipient(mock, "owner@acme.example", "+15551234567")

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "user-1",
		RecipientType:    RecipientTypeUser,
		NotificationType: TypeDeadlineReminder,
		Priority:         "medium",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.Empty(t, snsMock.Calls)
}

func TestExecute_MissingRecipientReturnsDisabled(t *testing.T) {
	h, mock, sesMock, _ := setupHandler(t, createTestConfig())
	mock.ExpectQuery("SELECT email, phone FROM users").
		WillReturnError(errors.New("sql: no rows in result set"))

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "missing",
		RecipientType:    RecipientTypeUser,
		NotificationType: TypeNewMatch,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, sesMock.Calls)
}

func TestExecute_UnknownTemplateFails(t *testing.T) {
	h, mock, _, _ := setupHandler(t, createTestConfig())
	expectRecipient(mock, "owner@acme.example", "")

	_, err := h.Execute(context.Background(), &Input{
		RecipientID:      "user-1",
		RecipientType:    RecipientTypeUser,
		NotificationType: "unknown_type",
	})

	assert.Error(t, err)
}

func TestExecute_EmailFailureReturnsFailedStatus(t *testing.T) {
	h, mock, sesMock, _ := setupHandler(t, createTestConfig())
	expectRecipient(mock, "owner@acme.example", "")
	sesMock.SendEmailFunc = func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("throttled")
	}

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "user-1",
		RecipientType:    RecipientTypeUser,
		NotificationType: TypeOutcomeRecorded,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
}

func TestExecute_EverythingDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false

	h, mock, _, _ := setupHandler(t, cfg)
	expectRecipient(mock, "owner@acme.example", "+15551234567")

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "user-1",
		RecipientType:    RecipientTypeUser,
		NotificationType: TypeNewMatch,
		Priority:         "high",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestExecute_ProfileRecipientJoinsUsers(t *testing.T) {
	h, mock, sesMock, _ := setupHandler(t, createTestConfig())
	mock.ExpectQuery("JOIN company_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).AddRow("owner@acme.example", ""))

	output, err := h.Execute(context.Background(), &Input{
		RecipientID:      "profile-1",
		RecipientType:    RecipientTypeProfile,
		NotificationType: TypeNewMatch,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("Score {{matchScore}} for {{opportunityTitle}} {{missing}}", map[string]interface{}{
		"matchScore":       88,
		"opportunityTitle": "Cyber Support",
	})
	assert.Equal(t, "Score 88 for Cyber Support ", out)
}
