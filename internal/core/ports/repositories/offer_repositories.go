package repositories

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// OfferReader defines read operations for offers
type OfferReader interface {
	// FindOfferByApplication retrieves the offer for an application.
	FindOfferByApplication(ctx context.Context, applicationID string) (*domain.Offer, error)
}

// OfferWriter defines write operations for offers
type OfferWriter interface {
	// UpsertOffer creates the offer on first call and updates the letter URL
	// on subsequent calls, keyed by application id. Never duplicates rows.
	UpsertOffer(ctx context.Context, offer domain.Offer) error
}

// OfferRepositoryFacade combines all offer repository interfaces
type OfferRepositoryFacade interface {
	OfferReader
	OfferWriter
}
