package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/mail"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
)

type emailFixture struct {
	transport *MockTransport
	logs      *MockEmailNotificationRepo
	prefs     *MockPreferenceRepo
	svc       service.EmailService
}

func newEmailFixture(t *testing.T) *emailFixture {
	f := &emailFixture{
		transport: new(MockTransport),
		logs:      new(MockEmailNotificationRepo),
		prefs:     new(MockPreferenceRepo),
	}
	// Empty template dir, so every name resolves to the built-in default.
	f.svc = service.NewEmailService(f.transport, mail.NewRegistry(t.TempDir()), f.logs, f.prefs, testPlatform)
	return f
}

func int32Ptr(v int32) *int32 { return &v }

func TestEmail_SendSuccess(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.prefs.On("Get", ctx, int32(7), "notification").Return(nil, repository.ErrNotFound)
	f.transport.On("Deliver", ctx, "to@example.com", "Hello", mock.Anything, mock.Anything).Return(nil).Once()
	f.logs.On("Create", ctx, mock.MatchedBy(func(n *domain.EmailNotification) bool {
		return n.Status == domain.DeliveryStatusSent && n.SentOn != nil && n.ToEmail == "to@example.com"
	})).Return(nil).Once()

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification", map[string]any{"body": "hi"}, int32Ptr(7))

	assert.True(t, result.Success)
	f.transport.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestEmail_SendSkippedByPreference(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.prefs.On("Get", ctx, int32(7), "notification").Return(&domain.NotificationPreference{
		UserID: 7, NotificationType: "notification", Enabled: false,
	}, nil)
	f.logs.On("Create", ctx, mock.MatchedBy(func(n *domain.EmailNotification) bool {
		return n.Status == domain.DeliveryStatusSkipped && n.SentOn == nil
	})).Return(nil).Once()

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification", nil, int32Ptr(7))

	assert.False(t, result.Success)
	assert.True(t, result.Skipped)
	assert.Equal(t, "User has disabled this notification type", result.Error)
	f.transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.logs.AssertExpectations(t)
}

func TestEmail_PreferenceLookupFailureDefaultsToSend(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.prefs.On("Get", ctx, int32(7), "notification").Return(nil, errors.New("connection refused"))
	f.transport.On("Deliver", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification", nil, int32Ptr(7))

	assert.True(t, result.Success)
	f.transport.AssertExpectations(t)
}

func TestEmail_TransportFailureLogged(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.transport.On("Deliver", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp timeout")).Once()
	f.logs.On("Create", ctx, mock.MatchedBy(func(n *domain.EmailNotification) bool {
		return n.Status == domain.DeliveryStatusFailed && n.ErrorMessage == "smtp timeout"
	})).Return(nil).Once()

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification", nil, nil)

	assert.False(t, result.Success)
	assert.Equal(t, "smtp timeout", result.Error)
	f.logs.AssertExpectations(t)
}

func TestEmail_LogFailureDoesNotFailSend(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.transport.On("Deliver", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(errors.New("log table missing")).Once()

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification", nil, nil)

	assert.True(t, result.Success)
}

func TestEmail_ContextEnrichmentDefersToCaller(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	var renderedHTML string
	f.transport.On("Deliver", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			renderedHTML = args.String(3)
		}).Return(nil).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	result := f.svc.Send(ctx, "to@example.com", "Hello", "notification",
		map[string]any{"platform_name": "Override Inc", "body": "hi"}, nil)

	assert.True(t, result.Success)
	assert.Contains(t, renderedHTML, "Override Inc")
	assert.NotContains(t, renderedHTML, testPlatform.Name)
	assert.Contains(t, renderedHTML, testPlatform.SupportEmail)
}

func TestEmail_SendBulkIsolation(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.transport.On("Deliver", ctx, "a@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.transport.On("Deliver", ctx, "b@example.com", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("mailbox full")).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	results := f.svc.SendBulk(ctx, []service.BulkRecipient{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}, "notification", map[string]any{"subject": "Batch", "body": "hi"})

	assert.Equal(t, int32(1), results.Sent)
	assert.Equal(t, int32(1), results.Failed)
	assert.Equal(t, int32(0), results.Skipped)
	assert.Len(t, results.Details, 2)
	assert.Equal(t, "b@example.com", results.Details[1].Email)
	assert.False(t, results.Details[1].Result.Success)
	f.transport.AssertExpectations(t)
}

func TestEmail_BulkSubjectFallback(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	var subjects []string
	f.transport.On("Deliver", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			subjects = append(subjects, args.String(2))
		}).Return(nil)
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	f.svc.SendBulk(ctx, []service.BulkRecipient{
		{Email: "a@example.com", Subject: "Personal"},
		{Email: "b@example.com"},
	}, "notification", nil)

	assert.Equal(t, []string{"Personal", "Ez2source Notification"}, subjects)
}

func TestEmail_GetPreferenceDefaultsToEnabled(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	f.prefs.On("Get", ctx, int32(7), "reminder").Return(nil, repository.ErrNotFound)

	enabled, err := f.svc.GetPreference(ctx, 7, "reminder")
	assert.NoError(t, err)
	assert.True(t, enabled)
}

func TestEmail_DeliveryStats(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	lastSent := "2026-08-22 14:00:00"
	f.logs.On("CountByStatusSince", ctx, domain.DeliveryStatusSent, mock.Anything).Return(int32(3), nil)
	f.logs.On("CountByStatusSince", ctx, domain.DeliveryStatusFailed, mock.Anything).Return(int32(1), nil)
	f.logs.On("CountByStatus", ctx, domain.DeliveryStatusSent).Return(int64(120), nil)
	f.logs.On("CountByStatus", ctx, domain.DeliveryStatusFailed).Return(int64(5), nil)
	f.logs.On("LastSentOn", ctx).Return(&lastSent, nil)

	stats, err := f.svc.DeliveryStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int32(3), stats.TodaySent)
	assert.Equal(t, int32(1), stats.TodayFailed)
	assert.Equal(t, int64(120), stats.TotalSent)
	assert.Equal(t, int64(5), stats.TotalFailed)
	assert.Equal(t, lastSent, stats.LastSentOn)
}

func TestEmail_SendUserInvitation(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	user := &domain.User{ID: 7, Username: "jdoe", Email: "jdoe@initech.com", FirstName: "Jane", Role: domain.UserRoleRecruiter}
	org := &domain.Organization{ID: 5, Name: "Initech"}

	f.prefs.On("Get", ctx, int32(7), "user_invitation").Return(nil, repository.ErrNotFound)
	var subject string
	f.transport.On("Deliver", ctx, "jdoe@initech.com", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			subject = args.String(2)
		}).Return(nil).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	result := f.svc.SendUserInvitation(ctx, user, org, "temp-pass-123")

	assert.True(t, result.Success)
	assert.Equal(t, "Welcome to Ez2source - Initech", subject)
}

func TestEmail_SendJobApplicationNotification(t *testing.T) {
	f := newEmailFixture(t)
	ctx := context.Background()

	recruiter := &domain.User{ID: 9, Username: "hreyes", Email: "hreyes@initech.com"}
	f.prefs.On("Get", ctx, int32(9), "job_application").Return(nil, repository.ErrNotFound)
	var subject string
	f.transport.On("Deliver", ctx, "hreyes@initech.com", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			subject = args.String(2)
		}).Return(nil).Once()
	f.logs.On("Create", ctx, mock.Anything).Return(nil)

	result := f.svc.SendJobApplicationNotification(ctx, recruiter, "Carol Chen", "Backend Engineer")

	assert.True(t, result.Success)
	assert.Equal(t, "New Application - Backend Engineer", subject)
}
