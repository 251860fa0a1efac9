package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/utils/keyedmutex"
)

// interviewService implements the InterviewSvcFacade interface
type interviewService struct {
	BaseService
	interviewRepo portsrepo.InterviewRepositoryFacade
	appRepo       portsrepo.ApplicationReader
	journalRepo   portsrepo.JournalRepositoryFacade
	appSvc        portssvc.ApplicationSvcFacade
	authz         portssvc.AuthorizerSvc
	notifier      portssvc.NotifierSvc
	appLocks      *keyedmutex.KeyedMutex
}

// NewInterviewService creates a new interview service with the provided dependencies
func NewInterviewService(
	interviewRepo portsrepo.InterviewRepositoryFacade,
	appRepo portsrepo.ApplicationReader,
	journalRepo portsrepo.JournalRepositoryFacade,
	appSvc portssvc.ApplicationSvcFacade,
	authz portssvc.AuthorizerSvc,
	notifier portssvc.NotifierSvc,
	appLocks *keyedmutex.KeyedMutex,
) portssvc.InterviewSvcFacade {
	return &interviewService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		journalRepo:   journalRepo,
		appSvc:        appSvc,
		authz:         authz,
		notifier:      notifier,
		appLocks:      appLocks,
	}
}

// Ensure interviewService implements the InterviewSvcFacade interface
var _ portssvc.InterviewSvcFacade = (*interviewService)(nil)

// SendAvailabilityInvitation accepts a reviewed application for interview and
// invites the candidate to submit availability. The invitation carries the
// interview location, so acceptance without one is rejected up front.
func (s *interviewService) SendAvailabilityInvitation(ctx context.Context, applicationID string, req dto.SendInvitationRequest, requestingUserID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, requestingUserID, domain.CapScheduleInterview, app); err != nil {
		return nil, err
	}

	if req.Location == "" {
		return nil, fmt.Errorf("%w: an availability invitation must name a location", apperrors.ErrMissingLocation)
	}

	updated, err := s.appSvc.ApplyEvent(ctx, applicationID, domain.EventAcceptForInterview, requestingUserID, func(a *domain.Application) {
		a.InterviewLocation = req.Location
		if len(req.InterviewerNames) > 0 {
			a.InterviewerNames = req.InterviewerNames
		}
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Availability invitation sent",
		slog.String("application_id", applicationID),
		slog.String("location", req.Location))
	return updated, nil
}

// ScheduleRound books a new round at the confirmed instant and fires the
// confirm-slot transition in one transaction. A race for the same instant is
// resolved by the storage layer; the loser receives ErrSlotTaken.
func (s *interviewService) ScheduleRound(ctx context.Context, applicationID string, req dto.ScheduleRoundRequest, requestingUserID string) (*domain.Interview, error) {
	s.appLocks.Lock(applicationID)
	defer s.appLocks.Unlock(applicationID)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	next := *app
	if err := next.Apply(domain.EventConfirmSlot); err != nil {
		return nil, err
	}

	if open, err := s.interviewRepo.FindLatestOpenRound(ctx, applicationID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else if open.Status == domain.RoundScheduled {
		return nil, fmt.Errorf("%w: round %d is still scheduled", apperrors.ErrRoundAlreadyOpen, open.RoundNumber)
	}

	rounds, err := s.interviewRepo.FindRoundsByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	roundNumber := 1
	for i := range rounds {
		if rounds[i].RoundNumber >= roundNumber {
			roundNumber = rounds[i].RoundNumber + 1
		}
	}

	location := req.Location
	if location == "" {
		location = app.InterviewLocation
	}
	interviewers := req.InterviewerNames
	if len(interviewers) == 0 {
		interviewers = app.InterviewerNames
	}

	now := time.Now().UTC()
	round := domain.Interview{
		InterviewID:      uuid.NewString(),
		ApplicationID:    applicationID,
		RoundNumber:      roundNumber,
		ScheduledAt:      req.ScheduledAt.UTC(),
		Location:         location,
		InterviewerNames: interviewers,
		Status:           domain.RoundScheduled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	next.Version = app.Version + 1
	next.LastUpdatedAt = now
	next.LastUpdatedBy = requestingUserID

	if err := s.interviewRepo.SaveRoundAndTransition(ctx, round, next, app.Version); err != nil {
		if !errors.Is(err, apperrors.ErrSlotTaken) && !errors.Is(err, apperrors.ErrRoundAlreadyOpen) {
			s.LogError(ctx, err, "Failed to schedule interview round",
				slog.String("application_id", applicationID))
		}
		return nil, err
	}

	s.recordRoundEntry(ctx, applicationID, requestingUserID,
		fmt.Sprintf("Interview round %d scheduled for %s", roundNumber, round.ScheduledAt.Format(time.RFC3339)))
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: applicationID,
		Event:         string(domain.EventConfirmSlot),
	})

	s.LogInfo(ctx, "Interview round scheduled",
		slog.String("interview_id", round.InterviewID),
		slog.String("application_id", applicationID),
		slog.Int("round_number", roundNumber))
	return &round, nil
}

// RescheduleLatestRound moves the latest non-cancelled round. Completed
// rounds are immutable.
func (s *interviewService) RescheduleLatestRound(ctx context.Context, applicationID string, req dto.RescheduleRoundRequest, requestingUserID string) (*domain.Interview, error) {
	s.appLocks.Lock(applicationID)
	defer s.appLocks.Unlock(applicationID)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	round, err := s.interviewRepo.FindLatestOpenRound(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if round.Status == domain.RoundCompleted {
		return nil, fmt.Errorf("%w: round %d is already completed", apperrors.ErrRoundImmutable, round.RoundNumber)
	}

	round.ScheduledAt = req.ScheduledAt.UTC()
	if req.Location != "" {
		round.Location = req.Location
	}
	round.LastUpdatedAt = time.Now().UTC()
	round.LastUpdatedBy = requestingUserID

	if err := s.interviewRepo.UpdateRoundSchedule(ctx, *round); err != nil {
		if !errors.Is(err, apperrors.ErrSlotTaken) {
			s.LogError(ctx, err, "Failed to reschedule interview round",
				slog.String("interview_id", round.InterviewID))
		}
		return nil, err
	}

	s.recordRoundEntry(ctx, applicationID, requestingUserID,
		fmt.Sprintf("Interview round %d rescheduled to %s", round.RoundNumber, round.ScheduledAt.Format(time.RFC3339)))
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: applicationID,
		Event:         "round-rescheduled",
	})

	s.LogInfo(ctx, "Interview round rescheduled",
		slog.String("interview_id", round.InterviewID),
		slog.Int("round_number", round.RoundNumber))
	return round, nil
}

// CancelRound marks a round CANCELLED. The application keeps its status and
// stage; a follow-up reject or new invitation is an explicit separate call.
func (s *interviewService) CancelRound(ctx context.Context, interviewID string, requestingUserID string) error {
	round, err := s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return err
	}

	s.appLocks.Lock(round.ApplicationID)
	defer s.appLocks.Unlock(round.ApplicationID)

	app, err := s.appRepo.FindApplicationByID(ctx, round.ApplicationID)
	if err != nil {
		return err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, requestingUserID, domain.CapScheduleInterview, app); err != nil {
		return err
	}

	round, err = s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return err
	}
	switch round.Status {
	case domain.RoundCompleted:
		return fmt.Errorf("%w: round %d is already completed", apperrors.ErrRoundImmutable, round.RoundNumber)
	case domain.RoundCancelled:
		return nil
	}

	if err := s.interviewRepo.CancelRound(ctx, interviewID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to cancel interview round",
			slog.String("interview_id", interviewID))
		return err
	}

	s.recordRoundEntry(ctx, round.ApplicationID, requestingUserID,
		fmt.Sprintf("Interview round %d cancelled", round.RoundNumber))
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: round.ApplicationID,
		Event:         "round-cancelled",
	})

	s.LogInfo(ctx, "Interview round cancelled",
		slog.String("interview_id", interviewID),
		slog.Int("round_number", round.RoundNumber))
	return nil
}

// CompleteRound marks the round COMPLETED, mirrors its feedback onto the
// application timeline, and fires the decision's transition in one
// transaction. On any failure nothing is written.
func (s *interviewService) CompleteRound(ctx context.Context, interviewID string, req dto.CompleteRoundRequest, requestingUserID string) (*domain.Application, error) {
	round, err := s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	s.appLocks.Lock(round.ApplicationID)
	defer s.appLocks.Unlock(round.ApplicationID)

	// Re-read under the lock; a concurrent completion may have won.
	round, err = s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	switch round.Status {
	case domain.RoundCompleted:
		return nil, fmt.Errorf("%w: round %d is already completed", apperrors.ErrRoundImmutable, round.RoundNumber)
	case domain.RoundCancelled:
		return nil, fmt.Errorf("%w: round %d is cancelled", apperrors.ErrValidation, round.RoundNumber)
	}

	latest, err := s.interviewRepo.FindLatestOpenRound(ctx, round.ApplicationID)
	if err != nil {
		return nil, err
	}
	if latest.InterviewID != round.InterviewID {
		return nil, fmt.Errorf("%w: only the latest round may be resolved", apperrors.ErrRoundImmutable)
	}

	app, err := s.appRepo.FindApplicationByID(ctx, round.ApplicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, requestingUserID, domain.CapRecordFeedback, app); err != nil {
		return nil, err
	}

	decision := domain.RoundDecision(req.Decision)
	event, ok := decision.Event()
	if !ok {
		return nil, fmt.Errorf("%w: unknown round decision %q", apperrors.ErrValidation, req.Decision)
	}

	next := *app
	if err := next.Apply(event); err != nil {
		return nil, err
	}

	feedback, err := s.journalRepo.FindFeedbackByRound(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	entries := s.mirrorFeedback(round, feedback)

	now := time.Now().UTC()
	round.Status = domain.RoundCompleted
	round.LastUpdatedAt = now
	round.LastUpdatedBy = requestingUserID

	next.Version = app.Version + 1
	next.LastUpdatedAt = now
	next.LastUpdatedBy = requestingUserID

	if err := s.interviewRepo.CompleteRoundAndTransition(ctx, *round, entries, next, app.Version); err != nil {
		s.LogError(ctx, err, "Failed to complete interview round",
			slog.String("interview_id", interviewID),
			slog.String("decision", req.Decision))
		return nil, err
	}

	s.recordRoundEntry(ctx, round.ApplicationID, requestingUserID,
		fmt.Sprintf("Interview round %d completed with decision %q", round.RoundNumber, req.Decision))
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: round.ApplicationID,
		Event:         string(event),
	})

	s.LogInfo(ctx, "Interview round completed",
		slog.String("interview_id", interviewID),
		slog.Int("round_number", round.RoundNumber),
		slog.String("decision", req.Decision),
		slog.String("status", string(next.Status)),
		slog.String("stage", string(next.CurrentStage)))
	return &next, nil
}

// ListRounds retrieves all rounds of an application in round order
func (s *interviewService) ListRounds(ctx context.Context, applicationID string, requestingUserID string) ([]domain.Interview, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	rounds, err := s.interviewRepo.FindRoundsByApplication(ctx, applicationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list interview rounds",
			slog.String("application_id", applicationID))
		return nil, err
	}
	if rounds == nil {
		return []domain.Interview{}, nil
	}
	return rounds, nil
}

// mirrorFeedback converts a round's feedback into timeline entries, oldest
// first, each crediting the original author.
func (s *interviewService) mirrorFeedback(round *domain.Interview, feedback []domain.Feedback) []domain.JournalEntry {
	now := time.Now().UTC()
	entries := make([]domain.JournalEntry, 0, len(feedback))
	// FindFeedbackByRound returns newest first
	for i := len(feedback) - 1; i >= 0; i-- {
		f := feedback[i]
		entries = append(entries, domain.JournalEntry{
			EntryID:       uuid.NewString(),
			ApplicationID: round.ApplicationID,
			Type:          domain.EntryJournal,
			Content:       fmt.Sprintf("Round %d: %s", round.RoundNumber, f.Content),
			Rating:        f.Rating,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     f.CreatedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: f.CreatedBy,
			},
		})
	}
	return entries
}

// recordRoundEntry appends a SYSTEM entry to the timeline; the round change
// has already committed, so failures are logged rather than propagated.
func (s *interviewService) recordRoundEntry(ctx context.Context, applicationID, actorUserID, content string) {
	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		ApplicationID: applicationID,
		Type:          domain.EntrySystem,
		Content:       content,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append round timeline entry",
			slog.String("application_id", applicationID))
	}
}
