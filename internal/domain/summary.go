package domain

// CompetencySection is one scored dimension of an AI feedback summary.
type CompetencySection struct {
	Score      int32    `json:"score"`
	Assessment string   `json:"assessment"`
	Highlights []string `json:"highlights,omitempty"`
}

type QualityMetrics struct {
	ResponseDepth          int32 `json:"response_depth"`
	RelevanceToRole        int32 `json:"relevance_to_role"`
	ProblemSolvingApproach int32 `json:"problem_solving_approach"`
}

type SummaryMetadata struct {
	GeneratedAt           string  `json:"generated_at"`
	ResponseID            int32   `json:"response_id"`
	TotalWords            int32   `json:"total_words"`
	AverageResponseLength float64 `json:"average_response_length"`
	CompletionTimeMinutes int32   `json:"completion_time_minutes"`
	OriginalAIScore       float64 `json:"original_ai_score"`
	FallbackMode          bool    `json:"fallback_mode,omitempty"`
}

// FeedbackSummary is the enriched AI assessment of one interview response.
type FeedbackSummary struct {
	OverallSummary       string            `json:"overall_summary"`
	Strengths            []string          `json:"strengths"`
	AreasForImprovement  []string          `json:"areas_for_improvement"`
	TechnicalCompetency  CompetencySection `json:"technical_competency"`
	CommunicationSkills  CompetencySection `json:"communication_skills"`
	CulturalFit          CompetencySection `json:"cultural_fit"`
	RecommendedNextSteps []string          `json:"recommended_next_steps,omitempty"`
	QualityMetrics       QualityMetrics    `json:"interview_quality_metrics"`
	RecruiterNotes       string            `json:"recruiter_notes"`
	HiringRecommendation string            `json:"hiring_recommendation"`
	ConfidenceLevel      int32             `json:"confidence_level"`
	OverallScore         float64           `json:"overall_score"`
	CandidateID          int32             `json:"candidate_id,omitempty"`
	Metadata             SummaryMetadata   `json:"metadata"`
}
