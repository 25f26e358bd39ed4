package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

type emailNotificationRepository struct {
	db *sql.DB
}

func NewEmailNotificationRepository(db *sql.DB) repository.EmailNotificationRepository {
	return &emailNotificationRepository{db: db}
}

func (r *emailNotificationRepository) Create(ctx context.Context, n *domain.EmailNotification) error {
	query := `INSERT INTO email_notifications (user_id, to_email, subject, template_name, status, error_message, sent_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	n.CreatedOn = time.Now().Format(dateTimeFormat)
	return r.db.QueryRowContext(ctx, query,
		n.UserID, n.ToEmail, n.Subject, n.TemplateName, n.Status, n.ErrorMessage, n.SentOn, n.CreatedOn,
	).Scan(&n.ID)
}

func (r *emailNotificationRepository) CountByStatusSince(ctx context.Context, status domain.DeliveryStatus, since time.Time) (int32, error) {
	query := `SELECT COUNT(*) FROM email_notifications WHERE status = $1 AND created_on >= $2`
	var count int32
	err := r.db.QueryRowContext(ctx, query, status, since).Scan(&count)
	return count, err
}

func (r *emailNotificationRepository) CountByStatus(ctx context.Context, status domain.DeliveryStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM email_notifications WHERE status = $1`
	var count int64
	err := r.db.QueryRowContext(ctx, query, status).Scan(&count)
	return count, err
}

func (r *emailNotificationRepository) LastSentOn(ctx context.Context) (*string, error) {
	query := `SELECT sent_on FROM email_notifications WHERE status = 'sent' AND sent_on IS NOT NULL ORDER BY sent_on DESC LIMIT 1`
	var sentOn time.Time
	err := r.db.QueryRowContext(ctx, query).Scan(&sentOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s := sentOn.Format(dateTimeFormat)
	return &s, nil
}

type preferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID int32, notificationType string) (*domain.NotificationPreference, error) {
	query := `SELECT user_id, notification_type, enabled FROM notification_preferences
	          WHERE user_id = $1 AND notification_type = $2`
	pref := &domain.NotificationPreference{}
	err := r.db.QueryRowContext(ctx, query, userID, notificationType).Scan(&pref.UserID, &pref.NotificationType, &pref.Enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.NotificationPreference) error {
	query := `INSERT INTO notification_preferences (user_id, notification_type, enabled)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, notification_type) DO UPDATE SET enabled = EXCLUDED.enabled`
	_, err := r.db.ExecContext(ctx, query, pref.UserID, pref.NotificationType, pref.Enabled)
	return err
}
