package postgres

import (
	"database/sql"

	"github.com/ez2source-sys/ez2source-sub001/internal/repository"

	_ "github.com/lib/pq"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.InterviewRepository
	repository.AssignmentRepository
	repository.FeedbackRepository
	repository.ResponseRepository
	repository.MessageRepository
	repository.EmailNotificationRepository
	repository.PreferenceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                          db,
		UserRepository:              NewUserRepository(db),
		OrganizationRepository:      NewOrganizationRepository(db),
		InterviewRepository:         NewInterviewRepository(db),
		AssignmentRepository:        NewAssignmentRepository(db),
		FeedbackRepository:          NewFeedbackRepository(db),
		ResponseRepository:          NewResponseRepository(db),
		MessageRepository:           NewMessageRepository(db),
		EmailNotificationRepository: NewEmailNotificationRepository(db),
		PreferenceRepository:        NewPreferenceRepository(db),
	}
}
