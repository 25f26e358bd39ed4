package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
)

// SendInterviewReminders emails every candidate with a pending assignment
// for an interview scheduled tomorrow.
func (jr *JobRunner) SendInterviewReminders() {
	jr.runWithRecovery("SendInterviewReminders", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		dayAfter := tomorrow.AddDate(0, 0, 1)

		interviews, err := jr.store.InterviewRepository.ListScheduledBetween(ctx, tomorrow, dayAfter)
		if err != nil {
			logger.Error("Failed to query upcoming interviews", "error", err)
			return
		}

		count := 0
		for i := range interviews {
			interview := &interviews[i]

			assignments, err := jr.store.AssignmentRepository.ListByInterview(ctx, interview.ID)
			if err != nil {
				logger.Error("Failed to list assignments for interview",
					"interview_id", interview.ID, "error", err)
				continue
			}

			for j := range assignments {
				assignment := &assignments[j]
				if assignment.Status != domain.AssignmentStatusPending {
					continue
				}

				candidate, err := jr.store.UserRepository.GetByID(ctx, assignment.CandidateID)
				if err != nil {
					logger.Error("Failed to load candidate for reminder",
						"assignment_id", assignment.ID,
						"candidate_id", assignment.CandidateID,
						"error", err)
					continue
				}

				interviewURL := fmt.Sprintf("%s/interviews/%d", jr.config.Platform.URL, interview.ID)
				result := jr.services.Email.SendInterviewReminder(ctx, candidate, interview.Title, interview.ScheduledOn, interviewURL)
				if !result.Success {
					if !result.Skipped {
						logger.Error("Failed to send interview reminder",
							"interview_id", interview.ID,
							"candidate_id", candidate.ID,
							"error", result.Error)
					}
					continue
				}

				count++
				logger.Debug("Sent interview reminder",
					"interview_id", interview.ID,
					"candidate_id", candidate.ID)
			}
		}

		logger.Info("Interview reminders sent", "count", count)
	})
}
