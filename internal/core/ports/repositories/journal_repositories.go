package repositories

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// FeedbackReader defines read operations for round feedback
type FeedbackReader interface {
	// FindFeedbackByRound retrieves feedback for a round, newest first.
	FindFeedbackByRound(ctx context.Context, interviewID string) ([]domain.Feedback, error)
}

// FeedbackWriter defines write operations for round feedback
type FeedbackWriter interface {
	// SaveFeedback appends one immutable feedback record.
	SaveFeedback(ctx context.Context, feedback domain.Feedback) error
}

// JournalReader defines read operations for the application timeline
type JournalReader interface {
	// ListJournalByApplication retrieves a paginated timeline for an
	// application in chronological order (oldest first) using token-based
	// pagination.
	ListJournalByApplication(ctx context.Context, applicationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for the application timeline
type JournalWriter interface {
	// SaveJournalEntry appends one timeline entry.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all feedback and journal repository interfaces
type JournalRepositoryFacade interface {
	FeedbackReader
	FeedbackWriter
	JournalReader
	JournalWriter
}
