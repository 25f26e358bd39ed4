package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/config"
	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/mail"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

const dateTimeFormat = "2006-01-02 15:04:05"

type emailService struct {
	transport mail.Transport
	templates *mail.Registry
	logs      repository.EmailNotificationRepository
	prefs     repository.PreferenceRepository
	platform  config.PlatformConfig
}

func NewEmailService(transport mail.Transport, templates *mail.Registry,
	logs repository.EmailNotificationRepository, prefs repository.PreferenceRepository,
	platform config.PlatformConfig) EmailService {
	return &emailService{
		transport: transport,
		templates: templates,
		logs:      logs,
		prefs:     prefs,
		platform:  platform,
	}
}

// Send renders the named template pair and delivers it, applying the
// per-user preference gate first. Exactly one log row is written per
// attempt, including skips.
func (s *emailService) Send(ctx context.Context, toEmail, subject, templateName string, tmplContext map[string]any, userID *int32) SendResult {
	if userID != nil {
		enabled, err := s.GetPreference(ctx, *userID, templateName)
		if err != nil {
			logger.Error("Failed to check notification preference", "userID", *userID, "type", templateName, "error", err)
			enabled = true
		}
		if !enabled {
			logger.Info("Email skipped due to user preferences", "to", toEmail, "template", templateName)
			s.logAttempt(ctx, toEmail, subject, templateName, userID, domain.DeliveryStatusSkipped, "")
			return SendResult{Success: false, Skipped: true, Error: "User has disabled this notification type"}
		}
	}

	enriched := s.enrichContext(tmplContext)
	if _, ok := enriched["subject"]; !ok {
		enriched["subject"] = subject
	}

	htmlBody, textBody, err := s.templates.Get(templateName).Render(enriched)
	if err != nil {
		logger.Error("Failed to render email template", "template", templateName, "error", err)
		s.logAttempt(ctx, toEmail, subject, templateName, userID, domain.DeliveryStatusFailed, err.Error())
		return SendResult{Success: false, Error: err.Error()}
	}

	return s.deliver(ctx, toEmail, subject, htmlBody, textBody, templateName, userID)
}

// SendPrerendered delivers a message whose bodies the caller already
// built. No preference gate is applied.
func (s *emailService) SendPrerendered(ctx context.Context, toEmail, subject, htmlBody, textBody, templateName string, userID *int32) SendResult {
	return s.deliver(ctx, toEmail, subject, htmlBody, textBody, templateName, userID)
}

func (s *emailService) deliver(ctx context.Context, toEmail, subject, htmlBody, textBody, templateName string, userID *int32) SendResult {
	logger.ExternalServiceCall("mail", "deliver", "to", toEmail, "template", templateName)
	err := s.transport.Deliver(ctx, toEmail, subject, htmlBody, textBody)
	logger.ExternalServiceResult("mail", "deliver", err, "to", toEmail)
	if err != nil {
		s.logAttempt(ctx, toEmail, subject, templateName, userID, domain.DeliveryStatusFailed, err.Error())
		return SendResult{Success: false, Error: err.Error()}
	}

	s.logAttempt(ctx, toEmail, subject, templateName, userID, domain.DeliveryStatusSent, "")
	return SendResult{Success: true}
}

// enrichContext injects the platform branding fields as defaults. Caller
// supplied values for the same keys always win.
func (s *emailService) enrichContext(tmplContext map[string]any) map[string]any {
	now := time.Now()
	enriched := map[string]any{
		"platform_name": s.platform.Name,
		"platform_url":  s.platform.URL,
		"support_email": s.platform.SupportEmail,
		"current_year":  now.Year(),
		"timestamp":     now.Format(dateTimeFormat),
	}
	for k, v := range tmplContext {
		enriched[k] = v
	}
	return enriched
}

// logAttempt appends one delivery log row. Logging failures are
// swallowed so they never fail the caller's send.
func (s *emailService) logAttempt(ctx context.Context, toEmail, subject, templateName string, userID *int32, status domain.DeliveryStatus, errMsg string) {
	entry := &domain.EmailNotification{
		UserID:       userID,
		ToEmail:      toEmail,
		Subject:      subject,
		TemplateName: templateName,
		Status:       status,
		ErrorMessage: errMsg,
	}
	if status == domain.DeliveryStatusSent {
		sentOn := time.Now().Format(dateTimeFormat)
		entry.SentOn = &sentOn
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		logger.Error("Failed to log email delivery", "to", toEmail, "error", err)
	}
}

// SendBulk processes recipients independently; one recipient's failure
// never aborts the batch.
func (s *emailService) SendBulk(ctx context.Context, recipients []BulkRecipient, templateName string, baseContext map[string]any) BulkSendResult {
	results := BulkSendResult{Details: make([]BulkDetail, 0, len(recipients))}

	for _, recipient := range recipients {
		tmplContext := make(map[string]any, len(baseContext)+len(recipient.Context))
		for k, v := range baseContext {
			tmplContext[k] = v
		}
		for k, v := range recipient.Context {
			tmplContext[k] = v
		}

		subject := recipient.Subject
		if subject == "" {
			if base, ok := baseContext["subject"].(string); ok && base != "" {
				subject = base
			} else {
				subject = fmt.Sprintf("%s Notification", s.platform.Name)
			}
		}

		result := s.Send(ctx, recipient.Email, subject, templateName, tmplContext, recipient.UserID)
		switch {
		case result.Success:
			results.Sent++
		case result.Skipped:
			results.Skipped++
		default:
			results.Failed++
		}
		results.Details = append(results.Details, BulkDetail{Email: recipient.Email, Result: result})
	}

	return results
}

func (s *emailService) DeliveryStats(ctx context.Context) (*domain.DeliveryStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &domain.DeliveryStats{}
	var err error
	if stats.TodaySent, err = s.logs.CountByStatusSince(ctx, domain.DeliveryStatusSent, midnight); err != nil {
		return nil, err
	}
	if stats.TodayFailed, err = s.logs.CountByStatusSince(ctx, domain.DeliveryStatusFailed, midnight); err != nil {
		return nil, err
	}
	if stats.TotalSent, err = s.logs.CountByStatus(ctx, domain.DeliveryStatusSent); err != nil {
		return nil, err
	}
	if stats.TotalFailed, err = s.logs.CountByStatus(ctx, domain.DeliveryStatusFailed); err != nil {
		return nil, err
	}
	lastSent, err := s.logs.LastSentOn(ctx)
	if err != nil {
		return nil, err
	}
	if lastSent != nil {
		stats.LastSentOn = *lastSent
	}
	return stats, nil
}

// GetPreference reports whether the notification type is enabled for the
// user. No stored preference means enabled.
func (s *emailService) GetPreference(ctx context.Context, userID int32, notificationType string) (bool, error) {
	pref, err := s.prefs.Get(ctx, userID, notificationType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return true, nil
		}
		return true, err
	}
	return pref.Enabled, nil
}

func (s *emailService) SetPreference(ctx context.Context, userID int32, notificationType string, enabled bool) error {
	return s.prefs.Upsert(ctx, &domain.NotificationPreference{
		UserID:           userID,
		NotificationType: notificationType,
		Enabled:          enabled,
	})
}

func (s *emailService) SendUserInvitation(ctx context.Context, user *domain.User, org *domain.Organization, tempPassword string) SendResult {
	tmplContext := map[string]any{
		"user_name":          firstNameOrUsername(user),
		"username":           user.Username,
		"temporary_password": tempPassword,
		"organization_name":  org.Name,
		"login_url":          s.platform.URL + "/login",
		"role":               roleTitle(user.Role),
		"message":            fmt.Sprintf("Welcome to %s! Your account has been created for %s.", s.platform.Name, org.Name),
	}
	return s.Send(ctx, user.Email,
		fmt.Sprintf("Welcome to %s - %s", s.platform.Name, org.Name),
		"user_invitation", tmplContext, &user.ID)
}

func (s *emailService) SendInterviewReminder(ctx context.Context, user *domain.User, interviewTitle, interviewDate, interviewURL string) SendResult {
	tmplContext := map[string]any{
		"user_name":       firstNameOrUsername(user),
		"interview_title": interviewTitle,
		"interview_date":  interviewDate,
		"interview_url":   interviewURL,
		"message":         fmt.Sprintf("Reminder: You have an upcoming interview scheduled for %s.", interviewDate),
	}
	return s.Send(ctx, user.Email,
		fmt.Sprintf("Interview Reminder - %s", interviewTitle),
		"interview_reminder", tmplContext, &user.ID)
}

func (s *emailService) SendJobApplicationNotification(ctx context.Context, recruiter *domain.User, candidateName, jobTitle string) SendResult {
	tmplContext := map[string]any{
		"user_name":      firstNameOrUsername(recruiter),
		"candidate_name": candidateName,
		"job_title":      jobTitle,
		"title":          "New Job Application",
		"message":        fmt.Sprintf("%s has applied for the %s position. Log in to review the application.", candidateName, jobTitle),
		"action_url":     s.platform.URL + "/applications",
	}
	return s.Send(ctx, recruiter.Email,
		fmt.Sprintf("New Application - %s", jobTitle),
		"job_application", tmplContext, &recruiter.ID)
}

func firstNameOrUsername(user *domain.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}

func roleTitle(role domain.UserRole) string {
	words := strings.Split(string(role), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
