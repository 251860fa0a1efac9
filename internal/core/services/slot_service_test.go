package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

type SlotServiceTestSuite struct {
	suite.Suite
	mockSlotRepo *MockSlotRepository
	mockAppRepo  *MockApplicationRepository
	mockAuthz    *MockAuthorizer
	service      portssvc.SlotSvcFacade
}

func (suite *SlotServiceTestSuite) SetupTest() {
	suite.mockSlotRepo = new(MockSlotRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockAuthz = new(MockAuthorizer)
	suite.service = services.NewSlotService(suite.mockSlotRepo, suite.mockAppRepo, suite.mockAuthz)
}

func futureWindow(weeks int, startHour, endHour int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, 7*weeks)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	return start, time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC)
}

// --- AddSlot Tests ---

func (suite *SlotServiceTestSuite) TestAddSlot_Success() {
	ctx := context.Background()
	app := submittedApplication()
	app.CurrentStage = domain.StageInvitationSent
	ownerID := app.ApplicantUserID
	startsAt, endsAt := futureWindow(1, 10, 12)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, ownerID, app).
		Return(&domain.Identity{UserID: ownerID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockSlotRepo.On("SaveSlot", ctx, mock.MatchedBy(func(slot domain.AvailabilitySlot) bool {
		return slot.OwnerUserID == ownerID &&
			slot.OriginStage == domain.StageInvitationSent &&
			slot.StartsAt.Equal(startsAt)
	})).Return(nil).Once()

	slot, err := suite.service.AddSlot(ctx, app.ApplicationID, dto.CreateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(slot)
	suite.Equal(domain.StageInvitationSent, slot.OriginStage)
	suite.NotEmpty(slot.SlotID)
	suite.mockSlotRepo.AssertExpectations(suite.T())
}

func (suite *SlotServiceTestSuite) TestAddSlot_Duplicate() {
	ctx := context.Background()
	app := submittedApplication()
	ownerID := app.ApplicantUserID
	startsAt, endsAt := futureWindow(1, 10, 12)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, ownerID, app).
		Return(&domain.Identity{UserID: ownerID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockSlotRepo.On("SaveSlot", ctx, mock.AnythingOfType("domain.AvailabilitySlot")).
		Return(apperrors.ErrDuplicateSlot).Once()

	slot, err := suite.service.AddSlot(ctx, app.ApplicationID, dto.CreateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().Error(err)
	suite.Nil(slot)
	suite.ErrorIs(err, apperrors.ErrDuplicateSlot)
}

func (suite *SlotServiceTestSuite) TestAddSlot_WindowAlreadyPassed() {
	ctx := context.Background()
	app := submittedApplication()
	ownerID := app.ApplicantUserID
	startsAt := time.Now().UTC().Add(-3 * time.Hour)
	endsAt := time.Now().UTC().Add(-2 * time.Hour)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, ownerID, app).
		Return(&domain.Identity{UserID: ownerID, Role: domain.RoleCandidate}, nil).Once()

	slot, err := suite.service.AddSlot(ctx, app.ApplicationID, dto.CreateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().Error(err)
	suite.Nil(slot)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSlotRepo.AssertNotCalled(suite.T(), "SaveSlot", mock.Anything, mock.Anything)
}

func (suite *SlotServiceTestSuite) TestAddSlot_TerminalApplication() {
	ctx := context.Background()
	app := submittedApplication()
	app.Status = domain.StatusRejected
	app.CurrentStage = domain.StageRejected
	ownerID := app.ApplicantUserID
	startsAt, endsAt := futureWindow(1, 10, 12)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, ownerID, app).
		Return(&domain.Identity{UserID: ownerID, Role: domain.RoleCandidate}, nil).Once()

	slot, err := suite.service.AddSlot(ctx, app.ApplicationID, dto.CreateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().Error(err)
	suite.Nil(slot)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SlotServiceTestSuite) TestAddSlot_StaleAfterInvitationStage() {
	ctx := context.Background()
	app := submittedApplication()
	app.Status = domain.StatusOffer
	app.CurrentStage = domain.StageOffer
	ownerID := app.ApplicantUserID
	startsAt, endsAt := futureWindow(1, 10, 12)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, ownerID, app).
		Return(&domain.Identity{UserID: ownerID, Role: domain.RoleCandidate}, nil).Once()

	slot, err := suite.service.AddSlot(ctx, app.ApplicationID, dto.CreateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().Error(err)
	suite.Nil(slot)
	suite.ErrorIs(err, apperrors.ErrStaleState)
	suite.mockSlotRepo.AssertNotCalled(suite.T(), "SaveSlot", mock.Anything, mock.Anything)
}

// --- UpdateSlot Tests ---

func (suite *SlotServiceTestSuite) TestUpdateSlot_Success() {
	ctx := context.Background()
	app := submittedApplication()
	app.CurrentStage = domain.StageInvitationSent
	ownerID := app.ApplicantUserID
	startsAt, endsAt := futureWindow(2, 9, 11)
	slot := &domain.AvailabilitySlot{
		SlotID:        uuid.NewString(),
		ApplicationID: app.ApplicationID,
		OwnerUserID:   ownerID,
		OriginStage:   domain.StageInvitationSent,
	}

	suite.mockSlotRepo.On("FindSlotByID", ctx, slot.SlotID).Return(slot, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockSlotRepo.On("UpdateSlotWindow", ctx, mock.MatchedBy(func(updated domain.AvailabilitySlot) bool {
		return updated.StartsAt.Equal(startsAt) && updated.EndsAt.Equal(endsAt)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateSlot(ctx, slot.SlotID, dto.UpdateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().NoError(err)
	suite.True(updated.StartsAt.Equal(startsAt))
	suite.mockSlotRepo.AssertExpectations(suite.T())
}

func (suite *SlotServiceTestSuite) TestUpdateSlot_NotOwner() {
	ctx := context.Background()
	slot := &domain.AvailabilitySlot{
		SlotID:        uuid.NewString(),
		ApplicationID: uuid.NewString(),
		OwnerUserID:   uuid.NewString(),
	}
	startsAt, endsAt := futureWindow(2, 9, 11)

	suite.mockSlotRepo.On("FindSlotByID", ctx, slot.SlotID).Return(slot, nil).Once()

	updated, err := suite.service.UpdateSlot(ctx, slot.SlotID, dto.UpdateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSlotRepo.AssertNotCalled(suite.T(), "UpdateSlotWindow", mock.Anything, mock.Anything)
}

func (suite *SlotServiceTestSuite) TestUpdateSlot_StaleAfterStageAdvance() {
	ctx := context.Background()
	app := submittedApplication()
	app.CurrentStage = domain.StageInterview
	ownerID := app.ApplicantUserID
	slot := &domain.AvailabilitySlot{
		SlotID:        uuid.NewString(),
		ApplicationID: app.ApplicationID,
		OwnerUserID:   ownerID,
		OriginStage:   domain.StageInvitationSent,
	}
	startsAt, endsAt := futureWindow(2, 9, 11)

	suite.mockSlotRepo.On("FindSlotByID", ctx, slot.SlotID).Return(slot, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	updated, err := suite.service.UpdateSlot(ctx, slot.SlotID, dto.UpdateSlotRequest{StartsAt: startsAt, EndsAt: endsAt}, ownerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrStaleState)
	suite.mockSlotRepo.AssertNotCalled(suite.T(), "UpdateSlotWindow", mock.Anything, mock.Anything)
}

// --- RemoveSlot Tests ---

func (suite *SlotServiceTestSuite) TestRemoveSlot_Success() {
	ctx := context.Background()
	app := submittedApplication()
	ownerID := app.ApplicantUserID
	slot := &domain.AvailabilitySlot{
		SlotID:        uuid.NewString(),
		ApplicationID: app.ApplicationID,
		OwnerUserID:   ownerID,
		OriginStage:   domain.StageReview,
	}

	suite.mockSlotRepo.On("FindSlotByID", ctx, slot.SlotID).Return(slot, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockSlotRepo.On("DeleteSlot", ctx, slot.SlotID).Return(nil).Once()

	err := suite.service.RemoveSlot(ctx, slot.SlotID, ownerID)

	suite.Require().NoError(err)
	suite.mockSlotRepo.AssertExpectations(suite.T())
}

// --- ListSlots Tests ---

func (suite *SlotServiceTestSuite) TestListSlots_EmptyIsNotNil() {
	ctx := context.Background()
	app := submittedApplication()
	userID := app.ApplicantUserID

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockSlotRepo.On("FindSlotsByApplication", ctx, app.ApplicationID, (*string)(nil)).
		Return(nil, nil).Once()

	slots, err := suite.service.ListSlots(ctx, app.ApplicationID, userID)

	suite.Require().NoError(err)
	suite.NotNil(slots)
	suite.Empty(slots)
}

func TestSlotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SlotServiceTestSuite))
}
