package dto

import (
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// SendInvitationRequest defines the payload for inviting a candidate to
// submit interview availability. Location presence is a business rule, not a
// binding rule, so its absence surfaces as a typed error.
type SendInvitationRequest struct {
	Location         string   `json:"location"`
	InterviewerNames []string `json:"interviewerNames"`
}

// ScheduleRoundRequest defines the payload for booking an interview round.
type ScheduleRoundRequest struct {
	ScheduledAt      time.Time `json:"scheduledAt" binding:"required"`
	Location         string    `json:"location"`
	InterviewerNames []string  `json:"interviewerNames"`
}

// RescheduleRoundRequest defines the payload for moving the latest open round.
type RescheduleRoundRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location"`
}

// CompleteRoundRequest defines the payload for resolving a round.
type CompleteRoundRequest struct {
	Decision string `json:"decision" binding:"required,oneof=reject nextRound finalOffer"`
}

// InterviewResponse defines the data returned for one interview round.
type InterviewResponse struct {
	InterviewID      string    `json:"interviewID"`
	ApplicationID    string    `json:"applicationID"`
	RoundNumber      int       `json:"roundNumber"`
	ScheduledAt      time.Time `json:"scheduledAt"`
	Location         string    `json:"location"`
	InterviewerNames []string  `json:"interviewerNames"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToInterviewResponse converts a domain.Interview to InterviewResponse DTO.
func ToInterviewResponse(i *domain.Interview) InterviewResponse {
	return InterviewResponse{
		InterviewID:      i.InterviewID,
		ApplicationID:    i.ApplicationID,
		RoundNumber:      i.RoundNumber,
		ScheduledAt:      i.ScheduledAt,
		Location:         i.Location,
		InterviewerNames: i.InterviewerNames,
		Status:           string(i.Status),
		CreatedAt:        i.CreatedAt,
	}
}

// ToInterviewResponses converts a slice of domain.Interview to DTOs.
func ToInterviewResponses(rounds []domain.Interview) []InterviewResponse {
	responses := make([]InterviewResponse, len(rounds))
	for i := range rounds {
		responses[i] = ToInterviewResponse(&rounds[i])
	}
	return responses
}
