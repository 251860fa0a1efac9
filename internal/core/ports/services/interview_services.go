package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// InterviewSvcFacade defines interview round management
type InterviewSvcFacade interface {
	// SendAvailabilityInvitation accepts a reviewed application for interview
	// and invites the candidate to submit availability. Requires a non-empty
	// location; fires the accept-for-interview transition.
	SendAvailabilityInvitation(ctx context.Context, applicationID string, req dto.SendInvitationRequest, requestingUserID string) (*domain.Application, error)

	// ScheduleRound books a new round at the confirmed instant and fires the
	// candidate-confirms-slot transition. Exactly one caller wins a race for
	// the same (application, scheduledAt); the loser gets ErrSlotTaken.
	ScheduleRound(ctx context.Context, applicationID string, req dto.ScheduleRoundRequest, requestingUserID string) (*domain.Interview, error)

	// RescheduleLatestRound moves the latest non-cancelled round. Completed
	// rounds are immutable.
	RescheduleLatestRound(ctx context.Context, applicationID string, req dto.RescheduleRoundRequest, requestingUserID string) (*domain.Interview, error)

	// CancelRound marks a round CANCELLED without touching the application's
	// status or stage; a follow-up reject or new invitation is explicit.
	CancelRound(ctx context.Context, interviewID string, requestingUserID string) error

	// CompleteRound marks the round COMPLETED, mirrors its feedback onto the
	// application timeline, and fires the decision's transition — atomically.
	CompleteRound(ctx context.Context, interviewID string, req dto.CompleteRoundRequest, requestingUserID string) (*domain.Application, error)

	// ListRounds retrieves all rounds of an application in round order.
	ListRounds(ctx context.Context, applicationID string, requestingUserID string) ([]domain.Interview, error)
}
