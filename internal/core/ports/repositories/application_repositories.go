package repositories

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// ApplicationReader defines read operations for application aggregates
type ApplicationReader interface {
	// FindApplicationByID retrieves an application by its unique identifier.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)

	// ListApplicationsByPosting retrieves a paginated list of applications for
	// a job posting using token-based pagination, newest first.
	ListApplicationsByPosting(ctx context.Context, jobPostingID string, limit int, nextToken *string) ([]domain.Application, *string, error)

	// FindApplicationByPostingAndApplicant looks up an existing submission for
	// the duplicate-application check.
	FindApplicationByPostingAndApplicant(ctx context.Context, jobPostingID, applicantUserID string) (*domain.Application, error)
}

// ApplicationWriter defines write operations for application aggregates
type ApplicationWriter interface {
	// SaveApplication persists a freshly submitted application.
	SaveApplication(ctx context.Context, app domain.Application) error

	// UpdateApplicationState persists status/stage (and interview metadata)
	// guarded by an optimistic version check. Returns ErrConflict when the
	// stored version no longer matches expectedVersion.
	UpdateApplicationState(ctx context.Context, app domain.Application, expectedVersion int64) error
}

// ApplicationRepositoryFacade combines all application repository interfaces
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}
