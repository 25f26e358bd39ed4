package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

const userColumns = `id, username, email, COALESCE(phone, ''), password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(job_title, ''), COALESCE(bio, ''), COALESCE(linkedin_url, ''), role, organization_id,
	profile_completed, is_organization_employee, cross_org_accessible, created_on, updated_on`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, phone, password_hash, first_name, last_name, job_title, bio, linkedin_url,
	          role, organization_id, profile_completed, is_organization_employee, cross_org_accessible, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	now := time.Now().Format(dateTimeFormat)
	u.CreatedOn = now
	u.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.Phone, u.PasswordHash, u.FirstName, u.LastName, u.JobTitle, u.Bio, u.LinkedinURL,
		u.Role, u.OrganizationID, u.ProfileCompleted, u.IsOrganizationEmployee, u.CrossOrgAccessible, u.CreatedOn, u.UpdatedOn,
	).Scan(&u.ID)
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.JobTitle, &u.Bio, &u.LinkedinURL, &u.Role, &u.OrganizationID,
		&u.ProfileCompleted, &u.IsOrganizationEmployee, &u.CrossOrgAccessible, &createdOn, &updatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.CreatedOn = createdOn.Format(dateTimeFormat)
	u.UpdatedOn = updatedOn.Format(dateTimeFormat)
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) ORDER BY id LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByEmailAndOrg(ctx context.Context, email string, orgID int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND organization_id = $2`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, orgID))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1) ORDER BY id LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1 ORDER BY id LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, phone))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, phone=$3, password_hash=$4, first_name=$5, last_name=$6,
	          job_title=$7, bio=$8, linkedin_url=$9, role=$10, organization_id=$11, profile_completed=$12,
	          is_organization_employee=$13, cross_org_accessible=$14, updated_on=$15 WHERE id=$16`
	u.UpdatedOn = time.Now().Format(dateTimeFormat)
	_, err := r.db.ExecContext(ctx, query,
		u.Username, u.Email, u.Phone, u.PasswordHash, u.FirstName, u.LastName,
		u.JobTitle, u.Bio, u.LinkedinURL, u.Role, u.OrganizationID, u.ProfileCompleted,
		u.IsOrganizationEmployee, u.CrossOrgAccessible, u.UpdatedOn, u.ID)
	return err
}

func (r *userRepository) ListByOrgAndRole(ctx context.Context, orgID int32, role domain.UserRole) ([]domain.User, error) {
	logger.DatabaseCall("SELECT", "users by org and role", "orgID", orgID, "role", role)
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND role = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orgID, role)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "orgID", orgID)
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.JobTitle, &u.Bio, &u.LinkedinURL, &u.Role, &u.OrganizationID,
			&u.ProfileCompleted, &u.IsOrganizationEmployee, &u.CrossOrgAccessible, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		u.CreatedOn = createdOn.Format(dateTimeFormat)
		u.UpdatedOn = updatedOn.Format(dateTimeFormat)
		users = append(users, u)
	}
	logger.DatabaseResult("SELECT", int64(len(users)), nil, "orgID", orgID, "role", role)
	return users, rows.Err()
}

func (r *userRepository) FirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, role))
}
