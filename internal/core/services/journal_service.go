package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	interviewRepo portsrepo.InterviewReader
	appRepo       portsrepo.ApplicationReader
	authz         portssvc.AuthorizerSvc
}

// NewJournalService creates a new journal service with the provided dependencies
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	interviewRepo portsrepo.InterviewReader,
	appRepo portsrepo.ApplicationReader,
	authz portssvc.AuthorizerSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		authz:         authz,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// AddFeedback appends immutable feedback to an interview round. Completed
// rounds no longer accept feedback, because completion already mirrored the
// round's feedback onto the timeline.
func (s *journalService) AddFeedback(ctx context.Context, interviewID string, req dto.AddFeedbackRequest, authorUserID string) (*domain.Feedback, error) {
	round, err := s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if round.Status == domain.RoundCompleted {
		return nil, fmt.Errorf("%w: round %d no longer accepts feedback", apperrors.ErrRoundImmutable, round.RoundNumber)
	}

	app, err := s.appRepo.FindApplicationByID(ctx, round.ApplicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, authorUserID, domain.CapRecordFeedback, app); err != nil {
		return nil, err
	}

	if !domain.ValidRating(req.Rating) {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidRating, *req.Rating)
	}

	now := time.Now().UTC()
	feedback := domain.Feedback{
		FeedbackID:  uuid.NewString(),
		InterviewID: interviewID,
		Content:     req.Content,
		Rating:      req.Rating,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorUserID,
		},
	}

	if err := s.journalRepo.SaveFeedback(ctx, feedback); err != nil {
		s.LogError(ctx, err, "Failed to save round feedback",
			slog.String("interview_id", interviewID))
		return nil, err
	}

	s.LogInfo(ctx, "Round feedback recorded",
		slog.String("feedback_id", feedback.FeedbackID),
		slog.String("interview_id", interviewID))
	return &feedback, nil
}

// ListFeedbackByRound retrieves a round's feedback, newest first
func (s *journalService) ListFeedbackByRound(ctx context.Context, interviewID string, requestingUserID string) ([]domain.Feedback, error) {
	round, err := s.interviewRepo.FindRoundByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	app, err := s.appRepo.FindApplicationByID(ctx, round.ApplicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	feedback, err := s.journalRepo.FindFeedbackByRound(ctx, interviewID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list round feedback",
			slog.String("interview_id", interviewID))
		return nil, err
	}
	if feedback == nil {
		return []domain.Feedback{}, nil
	}
	return feedback, nil
}

// AddJournalEntry appends one entry to an application's timeline
func (s *journalService) AddJournalEntry(ctx context.Context, applicationID string, req dto.AddJournalEntryRequest, authorUserID string) (*domain.JournalEntry, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, authorUserID, app); err != nil {
		return nil, err
	}

	if !domain.ValidRating(req.Rating) {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidRating, *req.Rating)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		ApplicationID: applicationID,
		Type:          domain.JournalEntryType(req.Type),
		Content:       req.Content,
		Rating:        req.Rating,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorUserID,
		},
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save timeline entry",
			slog.String("application_id", applicationID))
		return nil, err
	}

	s.LogInfo(ctx, "Timeline entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("application_id", applicationID),
		slog.String("type", req.Type))
	return &entry, nil
}

// ListJournal retrieves a page of the timeline in chronological order
func (s *journalService) ListJournal(ctx context.Context, applicationID string, requestingUserID string, params dto.ListJournalParams) (*dto.ListJournalResponse, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.journalRepo.ListJournalByApplication(ctx, applicationID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list application timeline",
			slog.String("application_id", applicationID))
		return nil, err
	}

	return &dto.ListJournalResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
