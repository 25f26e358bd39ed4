package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
)

type summaryFixture struct {
	responses  *MockResponseRepo
	interviews *MockInterviewRepo
	users      *MockUserRepo
	client     *MockLLMClient
	svc        service.SummaryService
}

func newSummaryFixture() *summaryFixture {
	f := &summaryFixture{
		responses:  new(MockResponseRepo),
		interviews: new(MockInterviewRepo),
		users:      new(MockUserRepo),
		client:     new(MockLLMClient),
	}
	f.svc = service.NewSummaryService(f.responses, f.interviews, f.users, f.client)
	return f
}

func testResponse() *domain.InterviewResponse {
	return &domain.InterviewResponse{
		ID:             40,
		InterviewID:    5,
		CandidateID:    3,
		OrganizationID: 4,
		Answers: map[string]string{
			"q1": "I designed the caching layer using Redis clusters",
			"q2": "Yes",
		},
		AIScore:          72.5,
		TimeTakenMinutes: 38,
	}
}

const summaryJSON = `{
	"overall_summary": "Solid backend candidate.",
	"strengths": ["Clear explanations"],
	"areas_for_improvement": ["More depth on testing"],
	"technical_competency": {"score": 80, "assessment": "Strong fundamentals"},
	"communication_skills": {"score": 70, "assessment": "Concise"},
	"cultural_fit": {"score": 90, "assessment": "Collaborative"},
	"recruiter_notes": "Discuss system design experience.",
	"hiring_recommendation": "Hire",
	"confidence_level": 85
}`

func TestSummary_GenerateSuccess(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	response := testResponse()
	recruiter := &domain.User{ID: 9, Role: domain.UserRoleRecruiter, OrganizationID: 4}
	f.responses.On("GetByID", ctx, int32(40)).Return(response, nil)
	f.users.On("GetByID", ctx, int32(9)).Return(recruiter, nil)
	f.interviews.On("GetByID", ctx, int32(5)).Return(&domain.Interview{
		ID: 5, Title: "Backend Engineer", JobDescription: "Build services", InterviewType: "technical",
	}, nil)
	f.users.On("GetByID", ctx, int32(3)).Return(&domain.User{
		ID: 3, FirstName: "Carol", LastName: "Chen", Email: "carol@example.com",
	}, nil)
	f.client.On("CompleteJSON", ctx, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Backend Engineer") && strings.Contains(prompt, "Carol Chen")
	})).Return(summaryJSON, nil)

	summary, err := f.svc.GenerateSummary(ctx, 40, 9)

	assert.NoError(t, err)
	assert.Equal(t, "Solid backend candidate.", summary.OverallSummary)
	assert.Equal(t, "Hire", summary.HiringRecommendation)
	// Mean of the three section scores.
	assert.Equal(t, 80.0, summary.OverallScore)
	assert.Equal(t, int32(40), summary.Metadata.ResponseID)
	assert.Equal(t, int32(9), summary.Metadata.TotalWords)
	assert.Equal(t, 4.5, summary.Metadata.AverageResponseLength)
	assert.Equal(t, int32(38), summary.Metadata.CompletionTimeMinutes)
	assert.Equal(t, 72.5, summary.Metadata.OriginalAIScore)
	assert.False(t, summary.Metadata.FallbackMode)
}

func TestSummary_FallbackOnLLMError(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	response := testResponse()
	recruiter := &domain.User{ID: 9, Role: domain.UserRoleRecruiter, OrganizationID: 4}
	f.responses.On("GetByID", ctx, int32(40)).Return(response, nil)
	f.users.On("GetByID", ctx, int32(9)).Return(recruiter, nil)
	f.interviews.On("GetByID", ctx, int32(5)).Return(&domain.Interview{ID: 5, Title: "Backend Engineer"}, nil)
	f.users.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, FirstName: "Carol"}, nil)
	f.client.On("CompleteJSON", ctx, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	summary, err := f.svc.GenerateSummary(ctx, 40, 9)

	assert.NoError(t, err)
	assert.Contains(t, summary.OverallSummary, "AI analysis temporarily unavailable")
	assert.Equal(t, "Pending Analysis", summary.HiringRecommendation)
	assert.Equal(t, 72.5, summary.OverallScore)
	assert.True(t, summary.Metadata.FallbackMode)
}

func TestSummary_FallbackOnMalformedJSON(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	response := testResponse()
	recruiter := &domain.User{ID: 9, Role: domain.UserRoleRecruiter, OrganizationID: 4}
	f.responses.On("GetByID", ctx, int32(40)).Return(response, nil)
	f.users.On("GetByID", ctx, int32(9)).Return(recruiter, nil)
	f.interviews.On("GetByID", ctx, int32(5)).Return(&domain.Interview{ID: 5, Title: "Backend Engineer"}, nil)
	f.users.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, FirstName: "Carol"}, nil)
	f.client.On("CompleteJSON", ctx, mock.Anything, mock.Anything).Return("not json at all", nil)

	summary, err := f.svc.GenerateSummary(ctx, 40, 9)

	assert.NoError(t, err)
	assert.True(t, summary.Metadata.FallbackMode)
}

func TestSummary_CandidateCanOnlyReadOwnResponse(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	response := testResponse()
	otherCandidate := &domain.User{ID: 8, Role: domain.UserRoleCandidate, OrganizationID: 4}
	f.responses.On("GetByID", ctx, int32(40)).Return(response, nil)
	f.users.On("GetByID", ctx, int32(8)).Return(otherCandidate, nil)

	_, err := f.svc.GenerateSummary(ctx, 40, 8)

	assert.ErrorIs(t, err, service.ErrPermissionDenied)
	f.client.AssertNotCalled(t, "CompleteJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummary_RecruiterLimitedToOwnOrg(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	response := testResponse()
	recruiter := &domain.User{ID: 9, Role: domain.UserRoleRecruiter, OrganizationID: 6}
	f.responses.On("GetByID", ctx, int32(40)).Return(response, nil)
	f.users.On("GetByID", ctx, int32(9)).Return(recruiter, nil)

	_, err := f.svc.GenerateSummary(ctx, 40, 9)

	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestSummary_BatchRequiresStaffRole(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	f.users.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Role: domain.UserRoleCandidate}, nil)

	_, err := f.svc.GenerateBatchSummaries(ctx, 5, 3)

	assert.ErrorIs(t, err, service.ErrPermissionDenied)
	f.responses.AssertNotCalled(t, "ListByInterview", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummary_BatchGeneratesPerResponse(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()

	recruiter := &domain.User{ID: 9, Role: domain.UserRoleRecruiter, OrganizationID: 4}
	responses := []domain.InterviewResponse{*testResponse()}
	responses[0].CandidateID = 3

	f.users.On("GetByID", ctx, int32(9)).Return(recruiter, nil)
	f.responses.On("ListByInterview", ctx, int32(5), int32(4)).Return(responses, nil)
	f.interviews.On("GetByID", ctx, int32(5)).Return(&domain.Interview{ID: 5, Title: "Backend Engineer"}, nil)
	f.users.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, FirstName: "Carol"}, nil)
	f.client.On("CompleteJSON", ctx, mock.Anything, mock.Anything).Return(summaryJSON, nil)

	summaries, err := f.svc.GenerateBatchSummaries(ctx, 5, 9)

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, int32(3), summaries[0].CandidateID)
	assert.Equal(t, 80.0, summaries[0].OverallScore)
}
