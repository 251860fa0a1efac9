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
)

// offerService implements the OfferSvcFacade interface
type offerService struct {
	BaseService
	offerRepo portsrepo.OfferRepositoryFacade
	appRepo   portsrepo.ApplicationReader
	authz     portssvc.AuthorizerSvc
	notifier  portssvc.NotifierSvc
}

// NewOfferService creates a new offer service with the provided dependencies
func NewOfferService(
	offerRepo portsrepo.OfferRepositoryFacade,
	appRepo portsrepo.ApplicationReader,
	authz portssvc.AuthorizerSvc,
	notifier portssvc.NotifierSvc,
) portssvc.OfferSvcFacade {
	return &offerService{
		offerRepo: offerRepo,
		appRepo:   appRepo,
		authz:     authz,
		notifier:  notifier,
	}
}

// Ensure offerService implements the OfferSvcFacade interface
var _ portssvc.OfferSvcFacade = (*offerService)(nil)

// IssueOrUpdateOffer creates the offer on first call and re-issues the letter
// on later calls. Legal only while the application sits at the offer stage
// awaiting the candidate's answer.
func (s *offerService) IssueOrUpdateOffer(ctx context.Context, applicationID string, req dto.IssueOfferRequest, requestingUserID string) (*domain.Offer, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, requestingUserID, domain.CapIssueOffer, app); err != nil {
		return nil, err
	}

	if app.Status != domain.StatusOffer || app.CurrentStage != domain.StageOffer {
		return nil, fmt.Errorf("%w: application is at (%s, %s)", apperrors.ErrNotInOfferStage, app.Status, app.CurrentStage)
	}

	now := time.Now().UTC()
	offer, err := s.offerRepo.FindOfferByApplication(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up existing offer",
				slog.String("application_id", applicationID))
			return nil, err
		}
		offer = &domain.Offer{
			OfferID:       uuid.NewString(),
			ApplicationID: applicationID,
			LetterURL:     req.LetterURL,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	} else {
		offer.LetterURL = req.LetterURL
		offer.LastUpdatedAt = now
		offer.LastUpdatedBy = requestingUserID
	}

	if err := s.offerRepo.UpsertOffer(ctx, *offer); err != nil {
		s.LogError(ctx, err, "Failed to upsert offer",
			slog.String("application_id", applicationID))
		return nil, err
	}

	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: applicationID,
		Event:         "offer-issued",
	})

	s.LogInfo(ctx, "Offer issued",
		slog.String("offer_id", offer.OfferID),
		slog.String("application_id", applicationID))
	return offer, nil
}

// GetOfferByApplication retrieves the offer for an application
func (s *offerService) GetOfferByApplication(ctx context.Context, applicationID string, requestingUserID string) (*domain.Offer, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	offer, err := s.offerRepo.FindOfferByApplication(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find offer",
				slog.String("application_id", applicationID))
		}
		return nil, err
	}
	return offer, nil
}
