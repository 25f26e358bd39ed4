package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
)

// ErrNotFound is returned by every Get* when no row matches. Services treat
// it as a recoverable condition, never a fault.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailAndOrg(ctx context.Context, email string, orgID int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByOrgAndRole(ctx context.Context, orgID int32, role domain.UserRole) ([]domain.User, error)
	FirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetByName(ctx context.Context, name string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

type InterviewRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Interview, error)
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]domain.Interview, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.TechnicalInterviewAssignment) error
	GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewAssignment, error)
	ListByInterview(ctx context.Context, interviewID int32) ([]domain.TechnicalInterviewAssignment, error)
	Update(ctx context.Context, a *domain.TechnicalInterviewAssignment) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.TechnicalInterviewFeedback) error
	GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewFeedback, error)
	MarkNotified(ctx context.Context, id int32, notifiedOn string) error
}

type ResponseRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.InterviewResponse, error)
	ListByInterview(ctx context.Context, interviewID, orgID int32) ([]domain.InterviewResponse, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int32) (*domain.Message, error)
	ListBetween(ctx context.Context, userID, partnerID, limit int32) ([]domain.Message, error)
	ListRecentByUser(ctx context.Context, userID, limit int32) ([]domain.Message, error)
	MarkThreadRead(ctx context.Context, recipientID, partnerID int32, readOn string) (int64, error)
}

type EmailNotificationRepository interface {
	Create(ctx context.Context, n *domain.EmailNotification) error
	CountByStatusSince(ctx context.Context, status domain.DeliveryStatus, since time.Time) (int32, error)
	CountByStatus(ctx context.Context, status domain.DeliveryStatus) (int64, error)
	LastSentOn(ctx context.Context) (*string, error)
}

type PreferenceRepository interface {
	Get(ctx context.Context, userID int32, notificationType string) (*domain.NotificationPreference, error)
	Upsert(ctx context.Context, pref *domain.NotificationPreference) error
}
