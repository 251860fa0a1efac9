package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// JournalSvcFacade defines the feedback and journal ledger
type JournalSvcFacade interface {
	// AddFeedback appends immutable feedback to an interview round.
	AddFeedback(ctx context.Context, interviewID string, req dto.AddFeedbackRequest, authorUserID string) (*domain.Feedback, error)

	// ListFeedbackByRound retrieves a round's feedback, newest first.
	ListFeedbackByRound(ctx context.Context, interviewID string, requestingUserID string) ([]domain.Feedback, error)

	// AddJournalEntry appends one entry to an application's timeline.
	AddJournalEntry(ctx context.Context, applicationID string, req dto.AddJournalEntryRequest, authorUserID string) (*domain.JournalEntry, error)

	// ListJournal retrieves the timeline in chronological order, oldest first.
	ListJournal(ctx context.Context, applicationID string, requestingUserID string, params dto.ListJournalParams) (*dto.ListJournalResponse, error)
}
