package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

const fallbackPositionTitle = "Technical Position"

type decisionOutcome int

const (
	decisionNotified decisionOutcome = iota
	decisionSkipped
	decisionFailed
)

type decisionService struct {
	feedback    repository.FeedbackRepository
	assignments repository.AssignmentRepository
	interviews  repository.InterviewRepository
	users       repository.UserRepository
	orgs        repository.OrganizationRepository
	email       EmailService
}

func NewDecisionService(feedback repository.FeedbackRepository, assignments repository.AssignmentRepository,
	interviews repository.InterviewRepository, users repository.UserRepository,
	orgs repository.OrganizationRepository, email EmailService) DecisionService {
	return &decisionService{
		feedback:    feedback,
		assignments: assignments,
		interviews:  interviews,
		users:       users,
		orgs:        orgs,
		email:       email,
	}
}

// NotifyDecision sends the candidate-facing email for a terminal
// interview decision. Returns true only when an email was delivered.
// A feedback row is notified at most once; repeat calls are no-ops.
func (s *decisionService) NotifyDecision(ctx context.Context, feedbackID, hrUserID int32) bool {
	return s.notify(ctx, feedbackID, hrUserID) == decisionNotified
}

func (s *decisionService) notify(ctx context.Context, feedbackID, hrUserID int32) decisionOutcome {
	fb, err := s.feedback.GetByID(ctx, feedbackID)
	if err != nil {
		logger.Error("Feedback not found", "feedbackID", feedbackID, "error", err)
		return decisionFailed
	}
	if fb.NotifiedOn != nil {
		logger.Info("Decision already notified", "feedbackID", feedbackID, "notifiedOn", *fb.NotifiedOn)
		return decisionSkipped
	}
	if !fb.Decision.Terminal() {
		logger.Warn("No notification sent for non-terminal decision", "feedbackID", feedbackID, "decision", fb.Decision)
		return decisionSkipped
	}

	assignment, err := s.assignments.GetByID(ctx, fb.AssignmentID)
	if err != nil {
		logger.Error("Assignment not found", "feedbackID", feedbackID, "assignmentID", fb.AssignmentID, "error", err)
		return decisionFailed
	}
	candidate, err := s.users.GetByID(ctx, assignment.CandidateID)
	if err != nil {
		logger.Error("Candidate not found", "assignmentID", assignment.ID, "candidateID", assignment.CandidateID, "error", err)
		return decisionFailed
	}
	org, err := s.orgs.GetByID(ctx, assignment.OrganizationID)
	if err != nil {
		logger.Error("Organization not found", "assignmentID", assignment.ID, "organizationID", assignment.OrganizationID, "error", err)
		return decisionFailed
	}
	hrUser, err := s.users.GetByID(ctx, hrUserID)
	if err != nil {
		logger.Error("HR user not found", "hrUserID", hrUserID, "error", err)
		return decisionFailed
	}

	positionTitle := fallbackPositionTitle
	if assignment.InterviewID != nil {
		if interview, err := s.interviews.GetByID(ctx, *assignment.InterviewID); err == nil {
			positionTitle = interview.Title
		}
	}

	var result SendResult
	var templateName string
	switch fb.Decision {
	case domain.DecisionSelected:
		templateName = "decision_acceptance"
		subject, html, text := acceptanceEmail(candidate.DisplayName(), org.Name, positionTitle, hrUser)
		result = s.email.SendPrerendered(ctx, candidate.Email, subject, html, text, templateName, &candidate.ID)
	case domain.DecisionRejected:
		templateName = "decision_rejection"
		subject, html, text := rejectionEmail(candidate.DisplayName(), org.Name, positionTitle, hrUser)
		result = s.email.SendPrerendered(ctx, candidate.Email, subject, html, text, templateName, &candidate.ID)
	}

	if !result.Success {
		logger.Error("Decision notification delivery failed", "feedbackID", feedbackID, "error", result.Error)
		return decisionFailed
	}

	notifiedOn := time.Now().Format(dateTimeFormat)
	if err := s.feedback.MarkNotified(ctx, fb.ID, notifiedOn); err != nil {
		logger.Error("Failed to mark feedback as notified", "feedbackID", feedbackID, "error", err)
	}
	return decisionNotified
}

// NotifyBulk processes each feedback ID independently. Non-terminal and
// already-notified rows count as skipped; lookup or delivery failures
// count as failed.
func (s *decisionService) NotifyBulk(ctx context.Context, feedbackIDs []int32, hrUserID int32) BulkDecisionResult {
	var results BulkDecisionResult
	for _, id := range feedbackIDs {
		switch s.notify(ctx, id, hrUserID) {
		case decisionNotified:
			results.Successful++
		case decisionSkipped:
			results.Skipped++
		default:
			results.Failed++
		}
	}
	return results
}

func acceptanceEmail(candidateName, companyName, positionTitle string, hrUser *domain.User) (subject, html, text string) {
	subject = fmt.Sprintf("Congratulations and Welcome to %s!", companyName)

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #2563eb; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="margin: 0;">Congratulations!</h1>
    <p style="margin: 10px 0 0 0;">Welcome to %s</p>
  </div>
  <div style="background: #f8fafc; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #e2e8f0;">
    <p>Dear %s,</p>
    <p>I'm delighted to offer you the position of <strong>%s</strong> at <strong>%s</strong>.
       We were impressed by your technical expertise and believe you'll be a great fit for our team.</p>
    <div style="background: white; padding: 20px; border-left: 4px solid #2563eb;">
      <h3 style="color: #2563eb; margin: 0 0 15px 0;">Next Steps</h3>
      <ul>
        <li>A formal offer letter will be sent to you within 24 hours</li>
        <li>HR will contact you to discuss start date and salary details</li>
        <li>Please feel free to reach out with any questions</li>
      </ul>
    </div>
    <p>Welcome aboard! We look forward to your contributions and to seeing you thrive here.</p>
    <p>Best regards,<br><strong>%s %s</strong><br>%s - HR Department</p>
  </div>
</div>`, companyName, candidateName, positionTitle, companyName, hrUser.FirstName, hrUser.LastName, companyName)

	text = fmt.Sprintf(`Dear %s,

I'm delighted to offer you the position of %s at %s. We were impressed by your technical expertise and believe you'll be a great fit for our team.

Next Steps:
- A formal offer letter will be sent to you within 24 hours
- HR will contact you to discuss start date and salary details
- Please feel free to reach out with any questions

Welcome aboard! We look forward to your contributions and to seeing you thrive here.

Best regards,
%s %s
%s - HR Department`, candidateName, positionTitle, companyName, hrUser.FirstName, hrUser.LastName, companyName)

	return subject, html, text
}

func rejectionEmail(candidateName, companyName, positionTitle string, hrUser *domain.User) (subject, html, text string) {
	subject = fmt.Sprintf("Your Application for %s at %s", positionTitle, companyName)

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #64748b; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="margin: 0;">Thank You</h1>
    <p style="margin: 10px 0 0 0;">For Your Interest in %s</p>
  </div>
  <div style="background: #f8fafc; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #e2e8f0;">
    <p>Dear %s,</p>
    <p>Thank you for taking the time to interview for the <strong>%s</strong> role at <strong>%s</strong>.
       We enjoyed learning more about your background and skills.</p>
    <p>After careful consideration, we have decided to move forward with another candidate whose experience
       more closely matches our current needs. This was not an easy decision. Your qualifications are
       impressive, and we appreciate the effort you put into the process.</p>
    <div style="background: white; padding: 20px; border-left: 4px solid #64748b;">
      <h3 style="color: #64748b; margin: 0 0 15px 0;">Looking Forward</h3>
      <p style="margin: 0;">We will keep your resume on file, and should a more fitting opportunity arise,
         we would welcome the chance to reconnect. In the meantime, we wish you every success in your career.</p>
    </div>
    <p>Thank you again for your interest in %s.</p>
    <p>Best regards,<br><strong>%s %s</strong><br>%s - HR Department</p>
  </div>
</div>`, companyName, candidateName, positionTitle, companyName, companyName, hrUser.FirstName, hrUser.LastName, companyName)

	text = fmt.Sprintf(`Dear %s,

Thank you for taking the time to interview for the %s role at %s. We enjoyed learning more about your background and skills.

After careful consideration, we have decided to move forward with another candidate whose experience more closely matches our current needs. This was not an easy decision. Your qualifications are impressive, and we appreciate the effort you put into the process.

We will keep your resume on file, and should a more fitting opportunity arise, we would welcome the chance to reconnect. In the meantime, we wish you every success in your career.

Thank you again for your interest in %s.

Best regards,
%s %s
%s - HR Department`, candidateName, positionTitle, companyName, companyName, hrUser.FirstName, hrUser.LastName, companyName)

	return subject, html, text
}
