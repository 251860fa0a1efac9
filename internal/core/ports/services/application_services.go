package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// ApplicationReaderSvc defines read operations for applications
type ApplicationReaderSvc interface {
	// GetApplicationByID retrieves a specific application by its ID.
	GetApplicationByID(ctx context.Context, applicationID string, requestingUserID string) (*domain.Application, error)

	// ListApplicationsByPosting retrieves a paginated list of applications
	// submitted against a job posting.
	ListApplicationsByPosting(ctx context.Context, jobPostingID string, requestingUserID string, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error)
}

// ApplicationWriterSvc defines the state-machine operations on applications
type ApplicationWriterSvc interface {
	// SubmitApplication creates a new application at (SUBMITTED, REVIEW).
	SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest, applicantUserID string) (*domain.Application, error)

	// ReviewDecision resolves the review stage. "reject" fires the reject
	// transition; "accept" is only legal through SendAvailabilityInvitation
	// and fails with ErrIllegalTransition here.
	ReviewDecision(ctx context.Context, applicationID string, decision string, reviewerUserID string) (*domain.Application, error)

	// RespondToOffer records the candidate's accept/decline of an offer.
	RespondToOffer(ctx context.Context, applicationID string, decision string, candidateUserID string) (*domain.Application, error)

	// ApplyEvent serializes and persists one pipeline transition. It is the
	// single mutation path for status/stage used by sibling services.
	ApplyEvent(ctx context.Context, applicationID string, event domain.PipelineEvent, actorUserID string, mutate func(*domain.Application)) (*domain.Application, error)
}

// ApplicationSvcFacade combines all application service interfaces
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
