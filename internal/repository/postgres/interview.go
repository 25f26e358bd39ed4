package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

type interviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) repository.InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) GetByID(ctx context.Context, id int32) (*domain.Interview, error) {
	query := `SELECT id, title, COALESCE(job_description, ''), interview_type, duration_minutes,
	          recruiter_id, organization_id, scheduled_on, created_on FROM interviews WHERE id = $1`
	iv := &domain.Interview{}
	var scheduledOn, createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&iv.ID, &iv.Title, &iv.JobDescription, &iv.InterviewType,
		&iv.DurationMinutes, &iv.RecruiterID, &iv.OrganizationID, &scheduledOn, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	iv.ScheduledOn = scheduledOn.Format(dateTimeFormat)
	iv.CreatedOn = createdOn.Format(dateTimeFormat)
	return iv, nil
}

func (r *interviewRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]domain.Interview, error) {
	query := `SELECT id, title, COALESCE(job_description, ''), interview_type, duration_minutes,
	          recruiter_id, organization_id, scheduled_on, created_on
	          FROM interviews WHERE scheduled_on >= $1 AND scheduled_on < $2 ORDER BY scheduled_on`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		var scheduledOn, createdOn time.Time
		if err := rows.Scan(&iv.ID, &iv.Title, &iv.JobDescription, &iv.InterviewType,
			&iv.DurationMinutes, &iv.RecruiterID, &iv.OrganizationID, &scheduledOn, &createdOn); err != nil {
			return nil, err
		}
		iv.ScheduledOn = scheduledOn.Format(dateTimeFormat)
		iv.CreatedOn = createdOn.Format(dateTimeFormat)
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, a *domain.TechnicalInterviewAssignment) error {
	query := `INSERT INTO technical_interview_assignments
	          (interview_id, candidate_id, interviewer_id, assigned_by_id, organization_id, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	a.CreatedOn = time.Now().Format(dateTimeFormat)
	return r.db.QueryRowContext(ctx, query,
		a.InterviewID, a.CandidateID, a.InterviewerID, a.AssignedByID, a.OrganizationID, a.Status, a.CreatedOn,
	).Scan(&a.ID)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewAssignment, error) {
	query := `SELECT id, interview_id, candidate_id, interviewer_id, assigned_by_id, organization_id, status, created_on
	          FROM technical_interview_assignments WHERE id = $1`
	a := &domain.TechnicalInterviewAssignment{}
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.InterviewID, &a.CandidateID, &a.InterviewerID,
		&a.AssignedByID, &a.OrganizationID, &a.Status, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.CreatedOn = createdOn.Format(dateTimeFormat)
	return a, nil
}

func (r *assignmentRepository) ListByInterview(ctx context.Context, interviewID int32) ([]domain.TechnicalInterviewAssignment, error) {
	query := `SELECT id, interview_id, candidate_id, interviewer_id, assigned_by_id, organization_id, status, created_on
	          FROM technical_interview_assignments WHERE interview_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.TechnicalInterviewAssignment
	for rows.Next() {
		var a domain.TechnicalInterviewAssignment
		var createdOn time.Time
		if err := rows.Scan(&a.ID, &a.InterviewID, &a.CandidateID, &a.InterviewerID,
			&a.AssignedByID, &a.OrganizationID, &a.Status, &createdOn); err != nil {
			return nil, err
		}
		a.CreatedOn = createdOn.Format(dateTimeFormat)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, a *domain.TechnicalInterviewAssignment) error {
	query := `UPDATE technical_interview_assignments SET status=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, a.Status, a.ID)
	return err
}

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.TechnicalInterviewFeedback) error {
	query := `INSERT INTO technical_interview_feedback
	          (assignment_id, decision, technical_rating, communication_rating, problem_solving_rating, comments, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	fb.CreatedOn = time.Now().Format(dateTimeFormat)
	return r.db.QueryRowContext(ctx, query,
		fb.AssignmentID, fb.Decision, fb.TechnicalRating, fb.CommunicationRating,
		fb.ProblemSolvingRating, fb.Comments, fb.CreatedOn,
	).Scan(&fb.ID)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int32) (*domain.TechnicalInterviewFeedback, error) {
	query := `SELECT id, assignment_id, decision, technical_rating, communication_rating, problem_solving_rating,
	          COALESCE(comments, ''), notified_on, created_on
	          FROM technical_interview_feedback WHERE id = $1`
	fb := &domain.TechnicalInterviewFeedback{}
	var notifiedOn sql.NullTime
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&fb.ID, &fb.AssignmentID, &fb.Decision,
		&fb.TechnicalRating, &fb.CommunicationRating, &fb.ProblemSolvingRating,
		&fb.Comments, &notifiedOn, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if notifiedOn.Valid {
		s := notifiedOn.Time.Format(dateTimeFormat)
		fb.NotifiedOn = &s
	}
	fb.CreatedOn = createdOn.Format(dateTimeFormat)
	return fb, nil
}

func (r *feedbackRepository) MarkNotified(ctx context.Context, id int32, notifiedOn string) error {
	query := `UPDATE technical_interview_feedback SET notified_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, notifiedOn, id)
	return err
}

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) repository.ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) scanResponse(row *sql.Row) (*domain.InterviewResponse, error) {
	resp := &domain.InterviewResponse{}
	var answers []byte
	var createdOn time.Time
	err := row.Scan(&resp.ID, &resp.InterviewID, &resp.CandidateID, &resp.OrganizationID,
		&answers, &resp.AIScore, &resp.TimeTakenMinutes, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &resp.Answers); err != nil {
			return nil, err
		}
	}
	resp.CreatedOn = createdOn.Format(dateTimeFormat)
	return resp, nil
}

func (r *responseRepository) GetByID(ctx context.Context, id int32) (*domain.InterviewResponse, error) {
	query := `SELECT id, interview_id, candidate_id, organization_id, answers, COALESCE(ai_score, 0),
	          COALESCE(time_taken_minutes, 0), created_on FROM interview_responses WHERE id = $1`
	return r.scanResponse(r.db.QueryRowContext(ctx, query, id))
}

func (r *responseRepository) ListByInterview(ctx context.Context, interviewID, orgID int32) ([]domain.InterviewResponse, error) {
	query := `SELECT id, interview_id, candidate_id, organization_id, answers, COALESCE(ai_score, 0),
	          COALESCE(time_taken_minutes, 0), created_on
	          FROM interview_responses WHERE interview_id = $1 AND organization_id = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, interviewID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.InterviewResponse
	for rows.Next() {
		var resp domain.InterviewResponse
		var answers []byte
		var createdOn time.Time
		if err := rows.Scan(&resp.ID, &resp.InterviewID, &resp.CandidateID, &resp.OrganizationID,
			&answers, &resp.AIScore, &resp.TimeTakenMinutes, &createdOn); err != nil {
			return nil, err
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &resp.Answers); err != nil {
				return nil, err
			}
		}
		resp.CreatedOn = createdOn.Format(dateTimeFormat)
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
