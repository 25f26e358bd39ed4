package service

import (
	"context"
	"errors"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
)

// ErrPermissionDenied is returned when the caller's role or organization
// does not allow the requested operation.
var ErrPermissionDenied = errors.New("permission denied")

// SendResult is the outcome of a single gateway send attempt.
type SendResult struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkRecipient is one entry in a bulk send. Context overlays the base
// context for that recipient only.
type BulkRecipient struct {
	Email   string
	Subject string
	UserID  *int32
	Context map[string]any
}

type BulkDetail struct {
	Email  string     `json:"email"`
	Result SendResult `json:"result"`
}

type BulkSendResult struct {
	Sent    int32        `json:"sent"`
	Failed  int32        `json:"failed"`
	Skipped int32        `json:"skipped"`
	Details []BulkDetail `json:"details"`
}

// EmailService is the notification delivery gateway: template rendering,
// preference gating, transport delivery and per-attempt logging.
type EmailService interface {
	Send(ctx context.Context, toEmail, subject, templateName string, tmplContext map[string]any, userID *int32) SendResult
	SendPrerendered(ctx context.Context, toEmail, subject, htmlBody, textBody, templateName string, userID *int32) SendResult
	SendBulk(ctx context.Context, recipients []BulkRecipient, templateName string, baseContext map[string]any) BulkSendResult
	DeliveryStats(ctx context.Context) (*domain.DeliveryStats, error)
	GetPreference(ctx context.Context, userID int32, notificationType string) (bool, error)
	SetPreference(ctx context.Context, userID int32, notificationType string, enabled bool) error

	SendUserInvitation(ctx context.Context, user *domain.User, org *domain.Organization, tempPassword string) SendResult
	SendInterviewReminder(ctx context.Context, user *domain.User, interviewTitle, interviewDate, interviewURL string) SendResult
	SendJobApplicationNotification(ctx context.Context, recruiter *domain.User, candidateName, jobTitle string) SendResult
}

// RegistrationService decides the outcome of an HR signup request and
// triggers the matching notifications.
type RegistrationService interface {
	CreateHRRegistrationRequest(ctx context.Context, req *domain.RegistrationRequest) *domain.RegistrationResult
}

type BulkDecisionResult struct {
	Successful int32 `json:"successful"`
	Failed     int32 `json:"failed"`
	Skipped    int32 `json:"skipped"`
}

// DecisionService sends candidate-facing emails for terminal interview
// decisions. Each feedback row is notified at most once.
type DecisionService interface {
	NotifyDecision(ctx context.Context, feedbackID, hrUserID int32) bool
	NotifyBulk(ctx context.Context, feedbackIDs []int32, hrUserID int32) BulkDecisionResult
}

// MessagingService handles peer to peer messages between platform users.
type MessagingService interface {
	SendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	GetConversations(ctx context.Context, userID, limit int32) ([]domain.Conversation, error)
	GetMessages(ctx context.Context, userID, partnerID, limit int32) ([]domain.Message, error)
}

// SummaryService produces AI-backed assessments of interview responses,
// falling back to a canned summary when analysis is unavailable.
type SummaryService interface {
	GenerateSummary(ctx context.Context, responseID, userID int32) (*domain.FeedbackSummary, error)
	GenerateBatchSummaries(ctx context.Context, interviewID, userID int32) ([]domain.FeedbackSummary, error)
}
