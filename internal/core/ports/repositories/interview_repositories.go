package repositories

import (
	"context"
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// InterviewReader defines read operations for interview rounds
type InterviewReader interface {
	// FindRoundByID retrieves a round by its unique identifier.
	FindRoundByID(ctx context.Context, interviewID string) (*domain.Interview, error)

	// FindRoundsByApplication retrieves all rounds for an application ordered
	// by round number ascending.
	FindRoundsByApplication(ctx context.Context, applicationID string) ([]domain.Interview, error)

	// FindLatestOpenRound retrieves the latest non-cancelled round for an
	// application, or ErrNotFound when every round is cancelled or none exist.
	FindLatestOpenRound(ctx context.Context, applicationID string) (*domain.Interview, error)

	// FindScheduledRoundsForUser retrieves SCHEDULED rounds the user
	// participates in, as applicant or as availability-slot owner, across all
	// of their applications. Used for match conflict checks.
	FindScheduledRoundsForUser(ctx context.Context, userID string) ([]domain.Interview, error)
}

// InterviewWriter defines write operations for interview rounds
type InterviewWriter interface {
	// SaveRoundAndTransition persists a new round and the application's
	// confirm-slot transition in one database transaction. Returns
	// ErrSlotTaken when a non-cancelled round already exists for the same
	// (application, scheduledAt), ErrRoundAlreadyOpen when another open round
	// exists, and ErrConflict on a lost optimistic version check.
	SaveRoundAndTransition(ctx context.Context, round domain.Interview, app domain.Application, expectedVersion int64) error

	// UpdateRoundSchedule rewrites the scheduled instant and location of a
	// round that is still SCHEDULED.
	UpdateRoundSchedule(ctx context.Context, round domain.Interview) error

	// CancelRound marks a round CANCELLED without renumbering others.
	CancelRound(ctx context.Context, interviewID string, userID string, now time.Time) error

	// CompleteRoundAndTransition marks the round COMPLETED, appends the
	// mirrored journal entries, and persists the application transition in a
	// single database transaction; on any failure nothing is written.
	CompleteRoundAndTransition(ctx context.Context, round domain.Interview, entries []domain.JournalEntry, app domain.Application, expectedVersion int64) error
}

// InterviewRepositoryFacade combines all interview repository interfaces
type InterviewRepositoryFacade interface {
	InterviewReader
	InterviewWriter
}

// InterviewRepositoryWithTx extends InterviewRepositoryFacade with transaction capabilities
type InterviewRepositoryWithTx interface {
	InterviewRepositoryFacade
	TransactionManager
}
