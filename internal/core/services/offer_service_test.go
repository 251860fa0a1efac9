package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

type OfferServiceTestSuite struct {
	suite.Suite
	mockOfferRepo *MockOfferRepository
	mockAppRepo   *MockApplicationRepository
	mockAuthz     *MockAuthorizer
	service       portssvc.OfferSvcFacade
}

func (suite *OfferServiceTestSuite) SetupTest() {
	suite.mockOfferRepo = new(MockOfferRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockAuthz = new(MockAuthorizer)
	suite.service = services.NewOfferService(suite.mockOfferRepo, suite.mockAppRepo, suite.mockAuthz, stubNotifier{})
}

func offerStageApplication() *domain.Application {
	app := submittedApplication()
	app.Status = domain.StatusOffer
	app.CurrentStage = domain.StageOffer
	app.Version = 5
	return app
}

func (suite *OfferServiceTestSuite) TestIssueOffer_FirstIssue() {
	ctx := context.Background()
	adminID := uuid.NewString()
	app := offerStageApplication()
	req := dto.IssueOfferRequest{LetterURL: "https://letters.example.com/offer-1.pdf"}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapIssueOffer, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()
	suite.mockOfferRepo.On("FindOfferByApplication", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOfferRepo.On("UpsertOffer", ctx, mock.MatchedBy(func(offer domain.Offer) bool {
		return offer.ApplicationID == app.ApplicationID && offer.LetterURL == req.LetterURL
	})).Return(nil).Once()

	offer, err := suite.service.IssueOrUpdateOffer(ctx, app.ApplicationID, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(offer)
	suite.NotEmpty(offer.OfferID)
	suite.Equal(req.LetterURL, offer.LetterURL)
	suite.mockOfferRepo.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestIssueOffer_ReissueKeepsIdentity() {
	ctx := context.Background()
	adminID := uuid.NewString()
	app := offerStageApplication()
	existing := &domain.Offer{
		OfferID:       uuid.NewString(),
		ApplicationID: app.ApplicationID,
		LetterURL:     "https://letters.example.com/offer-v1.pdf",
	}
	req := dto.IssueOfferRequest{LetterURL: "https://letters.example.com/offer-v2.pdf"}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapIssueOffer, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()
	suite.mockOfferRepo.On("FindOfferByApplication", ctx, app.ApplicationID).Return(existing, nil).Once()
	suite.mockOfferRepo.On("UpsertOffer", ctx, mock.MatchedBy(func(offer domain.Offer) bool {
		return offer.OfferID == existing.OfferID && offer.LetterURL == req.LetterURL
	})).Return(nil).Once()

	offer, err := suite.service.IssueOrUpdateOffer(ctx, app.ApplicationID, req, adminID)

	suite.Require().NoError(err)
	suite.Equal(existing.OfferID, offer.OfferID)
	suite.Equal(req.LetterURL, offer.LetterURL)
}

func (suite *OfferServiceTestSuite) TestIssueOffer_NotInOfferStage() {
	ctx := context.Background()
	adminID := uuid.NewString()
	app := submittedApplication()

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapIssueOffer, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()

	offer, err := suite.service.IssueOrUpdateOffer(ctx, app.ApplicationID, dto.IssueOfferRequest{LetterURL: "https://letters.example.com/x.pdf"}, adminID)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrNotInOfferStage)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "UpsertOffer", mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestGetOfferByApplication_NotFound() {
	ctx := context.Background()
	app := offerStageApplication()
	userID := app.ApplicantUserID

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockOfferRepo.On("FindOfferByApplication", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()

	offer, err := suite.service.GetOfferByApplication(ctx, app.ApplicationID, userID)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestOfferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OfferServiceTestSuite))
}
