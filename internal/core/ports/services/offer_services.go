package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// OfferSvcFacade defines offer issuance
type OfferSvcFacade interface {
	// IssueOrUpdateOffer creates the offer on first call and re-issues the
	// letter on later calls. Only legal once the application reached the
	// offer stage.
	IssueOrUpdateOffer(ctx context.Context, applicationID string, req dto.IssueOfferRequest, requestingUserID string) (*domain.Offer, error)

	// GetOfferByApplication retrieves the offer for an application.
	GetOfferByApplication(ctx context.Context, applicationID string, requestingUserID string) (*domain.Offer, error)
}

// ReportingSvcFacade defines pipeline reporting for the hiring side
type ReportingSvcFacade interface {
	// PipelineSummary reports per-stage application counts for a posting.
	PipelineSummary(ctx context.Context, jobPostingID string, requestingUserID string) (*dto.PipelineSummaryResponse, error)
}
