package repositories

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// JobPostingReader defines read operations for job postings
type JobPostingReader interface {
	// FindPostingByID retrieves a posting by its unique identifier.
	FindPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error)
}

// JobPostingWriter defines write operations for job postings
type JobPostingWriter interface {
	// SavePosting persists a posting.
	SavePosting(ctx context.Context, posting domain.JobPosting) error
}

// JobPostingRepositoryFacade combines all job posting repository interfaces
type JobPostingRepositoryFacade interface {
	JobPostingReader
	JobPostingWriter
}

// IdentityReader resolves pipeline participants. Identity data is owned by
// the surrounding application; the pipeline only reads it.
type IdentityReader interface {
	// FindIdentityByUserID retrieves the role and managed schools of a user.
	FindIdentityByUserID(ctx context.Context, userID string) (*domain.Identity, error)
}

// ReportingReader defines aggregate queries over the pipeline
type ReportingReader interface {
	// CountApplicationsByStage returns the number of applications per stage
	// for a job posting.
	CountApplicationsByStage(ctx context.Context, jobPostingID string) (map[domain.ApplicationStage]int, error)
}
