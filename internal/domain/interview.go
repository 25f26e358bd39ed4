package domain

type Interview struct {
	ID              int32  `json:"id"`
	Title           string `json:"title"`
	JobDescription  string `json:"job_description"`
	InterviewType   string `json:"interview_type"`
	DurationMinutes int32  `json:"duration_minutes"`
	RecruiterID     int32  `json:"recruiter_id"`
	OrganizationID  int32  `json:"organization_id"`
	ScheduledOn     string `json:"scheduled_on"`
	CreatedOn       string `json:"created_on"`
}

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

// TechnicalInterviewAssignment links a technical interviewer, a candidate,
// an interview and the assigning HR user. InterviewID may be nil when the
// assignment was created without a concrete interview record.
type TechnicalInterviewAssignment struct {
	ID             int32            `json:"id"`
	InterviewID    *int32           `json:"interview_id"`
	CandidateID    int32            `json:"candidate_id"`
	InterviewerID  int32            `json:"interviewer_id"`
	AssignedByID   int32            `json:"assigned_by_id"`
	OrganizationID int32            `json:"organization_id"`
	Status         AssignmentStatus `json:"status"`
	CreatedOn      string           `json:"created_on"`
}

type Decision string

const (
	DecisionSelected    Decision = "selected"
	DecisionRejected    Decision = "rejected"
	DecisionSecondRound Decision = "second_round"
	DecisionInProgress  Decision = "in_progress"
)

// Terminal reports whether the decision drives a candidate-facing
// notification.
func (d Decision) Terminal() bool {
	return d == DecisionSelected || d == DecisionRejected
}

// TechnicalInterviewFeedback is written once by the technical interviewer
// after the assignment's interview. NotifiedOn stamps the one candidate
// notification the decision is allowed to trigger.
type TechnicalInterviewFeedback struct {
	ID                   int32    `json:"id"`
	AssignmentID         int32    `json:"assignment_id"`
	Decision             Decision `json:"decision"`
	TechnicalRating      int32    `json:"technical_rating"`
	CommunicationRating  int32    `json:"communication_rating"`
	ProblemSolvingRating int32    `json:"problem_solving_rating"`
	Comments             string   `json:"comments"`
	NotifiedOn           *string  `json:"notified_on,omitempty"`
	CreatedOn            string   `json:"created_on"`
}

// InterviewResponse holds a candidate's submitted answers for one interview,
// keyed by question identifier.
type InterviewResponse struct {
	ID               int32             `json:"id"`
	InterviewID      int32             `json:"interview_id"`
	CandidateID      int32             `json:"candidate_id"`
	OrganizationID   int32             `json:"organization_id"`
	Answers          map[string]string `json:"answers"`
	AIScore          float64           `json:"ai_score"`
	TimeTakenMinutes int32             `json:"time_taken_minutes"`
	CreatedOn        string            `json:"created_on"`
}
