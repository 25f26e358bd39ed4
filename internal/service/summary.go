package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/llm"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

const summarySystemPrompt = "You are an expert HR analyst and interview assessor. Provide detailed, actionable feedback based on interview responses. Be professional, constructive, and specific."

type summaryService struct {
	responses  repository.ResponseRepository
	interviews repository.InterviewRepository
	users      repository.UserRepository
	client     llm.Client
}

func NewSummaryService(responses repository.ResponseRepository, interviews repository.InterviewRepository,
	users repository.UserRepository, client llm.Client) SummaryService {
	return &summaryService{
		responses:  responses,
		interviews: interviews,
		users:      users,
		client:     client,
	}
}

// GenerateSummary produces the AI assessment of one interview response.
// Candidates may only read their own responses; recruiters only those of
// their organization. AI failures degrade to the fallback summary, never
// to an error.
func (s *summaryService) GenerateSummary(ctx context.Context, responseID, userID int32) (*domain.FeedbackSummary, error) {
	response, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.UserRoleCandidate && response.CandidateID != userID {
		return nil, ErrPermissionDenied
	}
	if user.Role == domain.UserRoleRecruiter && response.OrganizationID != user.OrganizationID {
		return nil, ErrPermissionDenied
	}

	return s.generate(ctx, response), nil
}

func (s *summaryService) generate(ctx context.Context, response *domain.InterviewResponse) *domain.FeedbackSummary {
	interview, err := s.interviews.GetByID(ctx, response.InterviewID)
	if err != nil {
		logger.Error("Interview not found for summary", "responseID", response.ID, "error", err)
		return s.fallbackSummary(response)
	}
	candidate, err := s.users.GetByID(ctx, response.CandidateID)
	if err != nil {
		logger.Error("Candidate not found for summary", "responseID", response.ID, "error", err)
		return s.fallbackSummary(response)
	}

	prompt := buildSummaryPrompt(interview, candidate, response)

	raw, err := s.client.CompleteJSON(ctx, summarySystemPrompt, prompt)
	if err != nil {
		logger.Error("AI summary generation failed", "responseID", response.ID, "error", err)
		return s.fallbackSummary(response)
	}

	var summary domain.FeedbackSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		logger.Error("Failed to parse AI summary", "responseID", response.ID, "error", err)
		return s.fallbackSummary(response)
	}

	enhanceSummaryWithMetrics(&summary, response)
	return &summary
}

func buildSummaryPrompt(interview *domain.Interview, candidate *domain.User, response *domain.InterviewResponse) string {
	var answers strings.Builder
	i := 1
	for _, answer := range response.Answers {
		fmt.Fprintf(&answers, "Q%d: %s\n", i, answer)
		i++
	}

	jobDescription := interview.JobDescription
	if len(jobDescription) > 500 {
		jobDescription = jobDescription[:500] + "..."
	}

	return fmt.Sprintf(`Analyze this interview response and provide a comprehensive assessment in JSON format:

INTERVIEW DETAILS:
- Position: %s
- Job Description: %s
- Interview Type: %s

CANDIDATE DETAILS:
- Name: %s
- Email: %s
- Time Taken: %d minutes
- Current AI Score: %.1f/100

INTERVIEW RESPONSES:
%s

Please provide analysis in this exact JSON format:
{
  "overall_summary": "Brief 2-3 sentence overview of candidate performance",
  "strengths": ["Specific strength 1 with examples", "Specific strength 2 with examples", "Specific strength 3 with examples"],
  "areas_for_improvement": ["Specific area 1 with suggestions", "Specific area 2 with suggestions"],
  "technical_competency": {"score": 85, "assessment": "Detailed technical assessment", "highlights": ["skill1", "skill2"]},
  "communication_skills": {"score": 78, "assessment": "Communication style and clarity evaluation", "highlights": ["point1", "point2"]},
  "cultural_fit": {"score": 82, "assessment": "How well candidate aligns with role expectations", "highlights": ["indicator1", "indicator2"]},
  "recommended_next_steps": ["Specific recommendation 1", "Specific recommendation 2"],
  "interview_quality_metrics": {"response_depth": 85, "relevance_to_role": 88, "problem_solving_approach": 79},
  "recruiter_notes": "Key talking points for recruiter follow-up",
  "hiring_recommendation": "Strong Hire|Hire|On the Fence|No Hire",
  "confidence_level": 85
}`,
		interview.Title, jobDescription, interview.InterviewType,
		candidate.DisplayName(), candidate.Email, response.TimeTakenMinutes, response.AIScore,
		answers.String())
}

// enhanceSummaryWithMetrics adds the locally computed response metrics
// and the mean of the three section scores.
func enhanceSummaryWithMetrics(summary *domain.FeedbackSummary, response *domain.InterviewResponse) {
	var totalWords int32
	for _, answer := range response.Answers {
		totalWords += int32(len(strings.Fields(answer)))
	}
	var avgLength float64
	if len(response.Answers) > 0 {
		avgLength = math.Round(float64(totalWords)/float64(len(response.Answers))*10) / 10
	}

	summary.Metadata = domain.SummaryMetadata{
		GeneratedAt:           time.Now().UTC().Format(time.RFC3339),
		ResponseID:            response.ID,
		TotalWords:            totalWords,
		AverageResponseLength: avgLength,
		CompletionTimeMinutes: response.TimeTakenMinutes,
		OriginalAIScore:       response.AIScore,
	}

	scores := []int32{
		summary.TechnicalCompetency.Score,
		summary.CommunicationSkills.Score,
		summary.CulturalFit.Score,
	}
	var sum, count int32
	for _, score := range scores {
		if score > 0 {
			sum += score
			count++
		}
	}
	if count > 0 {
		summary.OverallScore = math.Round(float64(sum)/float64(count)*10) / 10
	}
}

func (s *summaryService) fallbackSummary(response *domain.InterviewResponse) *domain.FeedbackSummary {
	return &domain.FeedbackSummary{
		OverallSummary:       "Interview response recorded successfully. AI analysis temporarily unavailable.",
		Strengths:            []string{"Response submitted within time limit"},
		AreasForImprovement:  []string{"Detailed analysis pending"},
		OverallScore:         response.AIScore,
		HiringRecommendation: "Pending Analysis",
		RecruiterNotes:       "Please review responses manually or retry AI analysis.",
		Metadata: domain.SummaryMetadata{
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			ResponseID:   response.ID,
			FallbackMode: true,
		},
	}
}

// GenerateBatchSummaries summarizes every response to one interview for
// the caller's organization. Items are processed independently.
func (s *summaryService) GenerateBatchSummaries(ctx context.Context, interviewID, userID int32) ([]domain.FeedbackSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.UserRoleRecruiter && user.Role != domain.UserRoleAdmin && user.Role != domain.UserRoleSuperAdmin {
		return nil, ErrPermissionDenied
	}

	responses, err := s.responses.ListByInterview(ctx, interviewID, user.OrganizationID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.FeedbackSummary, 0, len(responses))
	for i := range responses {
		summary := s.generate(ctx, &responses[i])
		summary.CandidateID = responses[i].CandidateID
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
