package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `INSERT INTO organizations (name, slug, subscription_plan, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	org.CreatedOn = time.Now().Format(dateTimeFormat)
	return r.db.QueryRowContext(ctx, query, org.Name, org.Slug, org.SubscriptionPlan, org.IsActive, org.CreatedOn).Scan(&org.ID)
}

func (r *organizationRepository) scanOrg(row *sql.Row) (*domain.Organization, error) {
	org := &domain.Organization{}
	var createdOn time.Time
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.SubscriptionPlan, &org.IsActive, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	org.CreatedOn = createdOn.Format(dateTimeFormat)
	return org, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	query := `SELECT id, name, slug, subscription_plan, is_active, created_on FROM organizations WHERE id = $1`
	return r.scanOrg(r.db.QueryRowContext(ctx, query, id))
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	query := `SELECT id, name, slug, subscription_plan, is_active, created_on FROM organizations WHERE LOWER(name) = LOWER($1)`
	return r.scanOrg(r.db.QueryRowContext(ctx, query, name))
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, name, slug, subscription_plan, is_active, created_on FROM organizations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		var createdOn time.Time
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.SubscriptionPlan, &org.IsActive, &createdOn); err != nil {
			return nil, err
		}
		org.CreatedOn = createdOn.Format(dateTimeFormat)
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `UPDATE organizations SET name=$1, slug=$2, subscription_plan=$3, is_active=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, org.Name, org.Slug, org.SubscriptionPlan, org.IsActive, org.ID)
	return err
}
