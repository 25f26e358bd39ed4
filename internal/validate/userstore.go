package validate

import (
	"context"
	"errors"

	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

type userStore struct {
	users repository.UserRepository
}

// NewUserStore adapts the user repository to the uniqueness queries. The
// checks are global across organizations.
func NewUserStore(users repository.UserRepository) UniquenessStore {
	return &userStore{users: users}
}

func (s *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(s.users.GetByEmail(ctx, email))
}

func (s *userStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(s.users.GetByUsername(ctx, username))
}

func (s *userStore) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.exists(s.users.GetByPhone(ctx, phone))
}

func (s *userStore) exists(user any, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
