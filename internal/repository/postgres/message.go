package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

const messageColumns = `id, sender_id, recipient_id, COALESCE(subject, ''), content, message_type, priority,
	related_job_id, related_application_id, is_read, read_on, created_on`

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (sender_id, recipient_id, subject, content, message_type, priority,
	          related_job_id, related_application_id, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	msg.CreatedOn = time.Now().Format(dateTimeFormat)
	return r.db.QueryRowContext(ctx, query,
		msg.SenderID, msg.RecipientID, msg.Subject, msg.Content, msg.Type, msg.Priority,
		msg.RelatedJobID, msg.RelatedApplicationID, msg.IsRead, msg.CreatedOn,
	).Scan(&msg.ID)
}

func scanMessage(scan func(dest ...any) error) (*domain.Message, error) {
	msg := &domain.Message{}
	var readOn sql.NullTime
	var createdOn time.Time
	err := scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Subject, &msg.Content, &msg.Type, &msg.Priority,
		&msg.RelatedJobID, &msg.RelatedApplicationID, &msg.IsRead, &readOn, &createdOn)
	if err != nil {
		return nil, err
	}
	if readOn.Valid {
		s := readOn.Time.Format(dateTimeFormat)
		msg.ReadOn = &s
	}
	msg.CreatedOn = createdOn.Format(dateTimeFormat)
	return msg, nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// ListBetween returns the two-party thread, newest first.
func (r *messageRepository) ListBetween(ctx context.Context, userID, partnerID, limit int32) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
	          WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
	          ORDER BY created_on DESC LIMIT $3`
	return r.queryMessages(ctx, query, userID, partnerID, limit)
}

func (r *messageRepository) ListRecentByUser(ctx context.Context, userID, limit int32) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
	          WHERE sender_id = $1 OR recipient_id = $1
	          ORDER BY created_on DESC LIMIT $2`
	return r.queryMessages(ctx, query, userID, limit)
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, recipientID, partnerID int32, readOn string) (int64, error) {
	query := `UPDATE messages SET is_read = TRUE, read_on = $1
	          WHERE recipient_id = $2 AND sender_id = $3 AND is_read = FALSE`
	res, err := r.db.ExecContext(ctx, query, readOn, recipientID, partnerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
