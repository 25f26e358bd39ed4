package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

func messageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "sender_id", "recipient_id", "subject", "content", "message_type", "priority",
		"related_job_id", "related_application_id", "is_read", "read_on", "created_on",
	})
}

func TestMessageRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs(int32(1), int32(2), "Hi", "hello there", domain.MessageTypeDirect, domain.MessagePriorityNormal,
			nil, nil, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(10)))

	msg := &domain.Message{
		SenderID:    1,
		RecipientID: 2,
		Subject:     "Hi",
		Content:     "hello there",
		Type:        domain.MessageTypeDirect,
		Priority:    domain.MessagePriorityNormal,
	}
	err = repo.Create(context.Background(), msg)

	assert.NoError(t, err)
	assert.Equal(t, int32(10), msg.ID)
	assert.NotEmpty(t, msg.CreatedOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM messages WHERE id`).
		WithArgs(int32(99)).
		WillReturnRows(messageRows())

	_, err = repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	now := time.Now()
	rows := messageRows().
		AddRow(int32(12), int32(2), int32(1), "Re: Hi", "second", "direct", "normal", nil, nil, false, nil, now).
		AddRow(int32(11), int32(1), int32(2), "Hi", "first", "direct", "normal", nil, nil, true, now, now)
	mock.ExpectQuery(`FROM messages\s+WHERE \(sender_id = \$1 AND recipient_id = \$2\)`).
		WithArgs(int32(1), int32(2), int32(50)).
		WillReturnRows(rows)

	messages, err := repo.ListBetween(context.Background(), 1, 2, 50)

	assert.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int32(12), messages[0].ID)
	assert.Nil(t, messages[0].ReadOn)
	assert.NotNil(t, messages[1].ReadOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkThreadRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectExec(`UPDATE messages SET is_read = TRUE`).
		WithArgs("2026-08-23 10:00:00", int32(1), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	marked, err := repo.MarkThreadRead(context.Background(), 1, 2, "2026-08-23 10:00:00")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
