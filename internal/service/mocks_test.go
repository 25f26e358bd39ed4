package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
)

// MockEmailService implements service.EmailService for workflows that
// only trigger sends.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, subject, templateName string, tmplContext map[string]any, userID *int32) service.SendResult {
	args := m.Called(ctx, toEmail, subject, templateName, tmplContext, userID)
	return args.Get(0).(service.SendResult)
}

func (m *MockEmailService) SendPrerendered(ctx context.Context, toEmail, subject, htmlBody, textBody, templateName string, userID *int32) service.SendResult {
	args := m.Called(ctx, toEmail, subject, htmlBody, textBody, templateName, userID)
	return args.Get(0).(service.SendResult)
}

func (m *MockEmailService) SendBulk(ctx context.Context, recipients []service.BulkRecipient, templateName string, baseContext map[string]any) service.BulkSendResult {
	args := m.Called(ctx, recipients, templateName, baseContext)
	return args.Get(0).(service.BulkSendResult)
}

func (m *MockEmailService) DeliveryStats(ctx context.Context) (*domain.DeliveryStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*domain.DeliveryStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEmailService) GetPreference(ctx context.Context, userID int32, notificationType string) (bool, error) {
	args := m.Called(ctx, userID, notificationType)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmailService) SetPreference(ctx context.Context, userID int32, notificationType string, enabled bool) error {
	args := m.Called(ctx, userID, notificationType, enabled)
	return args.Error(0)
}

func (m *MockEmailService) SendUserInvitation(ctx context.Context, user *domain.User, org *domain.Organization, tempPassword string) service.SendResult {
	args := m.Called(ctx, user, org, tempPassword)
	return args.Get(0).(service.SendResult)
}

func (m *MockEmailService) SendInterviewReminder(ctx context.Context, user *domain.User, interviewTitle, interviewDate, interviewURL string) service.SendResult {
	args := m.Called(ctx, user, interviewTitle, interviewDate, interviewURL)
	return args.Get(0).(service.SendResult)
}

func (m *MockEmailService) SendJobApplicationNotification(ctx context.Context, recruiter *domain.User, candidateName, jobTitle string) service.SendResult {
	args := m.Called(ctx, recruiter, candidateName, jobTitle)
	return args.Get(0).(service.SendResult)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmailAndOrg(ctx context.Context, email string, orgID int32) (*domain.User, error) {
	args := m.Called(ctx, email, orgID)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) ListByOrgAndRole(ctx context.Context, orgID int32, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, orgID, role)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) FirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, role)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*domain.Organization); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizationRepo) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if o, ok := args.Get(0).(*domain.Organization); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if orgs, ok := args.Get(0).([]domain.Organization); ok {
		return orgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int32) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if iv, ok := args.Get(0).(*domain.Interview); ok {
		return iv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, from, to)
	if ivs, ok := args.Get(0).([]domain.Interview); ok {
		return ivs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, a *domain.TechnicalInterviewAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepo) GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewAssignment, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*domain.TechnicalInterviewAssignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepo) ListByInterview(ctx context.Context, interviewID int32) ([]domain.TechnicalInterviewAssignment, error) {
	args := m.Called(ctx, interviewID)
	if as, ok := args.Get(0).([]domain.TechnicalInterviewAssignment); ok {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepo) Update(ctx context.Context, a *domain.TechnicalInterviewAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, fb *domain.TechnicalInterviewFeedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepo) GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewFeedback, error) {
	args := m.Called(ctx, id)
	if fb, ok := args.Get(0).(*domain.TechnicalInterviewFeedback); ok {
		return fb, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeedbackRepo) MarkNotified(ctx context.Context, id int32, notifiedOn string) error {
	args := m.Called(ctx, id, notifiedOn)
	return args.Error(0)
}

type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) GetByID(ctx context.Context, id int32) (*domain.InterviewResponse, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.InterviewResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResponseRepo) ListByInterview(ctx context.Context, interviewID, orgID int32) ([]domain.InterviewResponse, error) {
	args := m.Called(ctx, interviewID, orgID)
	if rs, ok := args.Get(0).([]domain.InterviewResponse); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if msg, ok := args.Get(0).(*domain.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepo) ListBetween(ctx context.Context, userID, partnerID, limit int32) ([]domain.Message, error) {
	args := m.Called(ctx, userID, partnerID, limit)
	if msgs, ok := args.Get(0).([]domain.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepo) ListRecentByUser(ctx context.Context, userID, limit int32) ([]domain.Message, error) {
	args := m.Called(ctx, userID, limit)
	if msgs, ok := args.Get(0).([]domain.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepo) MarkThreadRead(ctx context.Context, recipientID, partnerID int32, readOn string) (int64, error) {
	args := m.Called(ctx, recipientID, partnerID, readOn)
	return args.Get(0).(int64), args.Error(1)
}

type MockEmailNotificationRepo struct {
	mock.Mock
}

func (m *MockEmailNotificationRepo) Create(ctx context.Context, n *domain.EmailNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockEmailNotificationRepo) CountByStatusSince(ctx context.Context, status domain.DeliveryStatus, since time.Time) (int32, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockEmailNotificationRepo) CountByStatus(ctx context.Context, status domain.DeliveryStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmailNotificationRepo) LastSentOn(ctx context.Context) (*string, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*string); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPreferenceRepo struct {
	mock.Mock
}

func (m *MockPreferenceRepo) Get(ctx context.Context, userID int32, notificationType string) (*domain.NotificationPreference, error) {
	args := m.Called(ctx, userID, notificationType)
	if p, ok := args.Get(0).(*domain.NotificationPreference); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPreferenceRepo) Upsert(ctx context.Context, pref *domain.NotificationPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

// MockTransport implements mail.Transport.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Deliver(ctx context.Context, to, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, to, subject, htmlBody, textBody)
	return args.Error(0)
}

// MockLLMClient implements llm.Client.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
